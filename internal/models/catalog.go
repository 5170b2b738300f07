// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is an item in the village product catalog (UMKM goods,
// crafts, agricultural produce).
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Price       *int64    `json:"price,omitempty"` // rupiah, no decimals
	ImageURL    *string   `json:"image_url,omitempty"`
	Contact     *string   `json:"contact,omitempty"`
	Category    *string   `json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Culinary is an item in the local culinary catalog: a dish or a
// food stall, with where to find it.
type Culinary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Price       *int64    `json:"price,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	Seller      *string   `json:"seller,omitempty"`
	Location    *string   `json:"location,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Booklet is an uploaded PDF document, typically a tourism booklet or
// a service guide, served to visitors from object storage.
type Booklet struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Category    *string   `json:"category,omitempty"`
	PDFURL      string    `json:"pdf_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Media records a file uploaded to object storage so uploads stay
// traceable and deletable from the admin panel.
type Media struct {
	ID          uuid.UUID `json:"id"`
	Filename    string    `json:"filename"`
	S3Key       string    `json:"s3_key"`
	URL         string    `json:"url"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	Folder      string    `json:"folder"`
	UploadedBy  uuid.UUID `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}
