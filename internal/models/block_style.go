// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "encoding/json"

// BlockType is the closed set of content block kinds. Rendering and
// editing code must switch over all three explicitly — an unknown value
// is an error, never a silent fallthrough.
type BlockType string

const (
	BlockTypeText     BlockType = "text"
	BlockTypeSubtitle BlockType = "subtitle"
	BlockTypeImage    BlockType = "image"
)

// Valid reports whether t is one of the three known block types.
func (t BlockType) Valid() bool {
	switch t {
	case BlockTypeText, BlockTypeSubtitle, BlockTypeImage:
		return true
	}
	return false
}

// Text alignment values accepted in a block style.
const (
	AlignLeft    = "left"
	AlignCenter  = "center"
	AlignRight   = "right"
	AlignJustify = "justify"
)

// Font size values accepted in a block style.
const (
	FontSmall  = "small"
	FontMedium = "medium"
	FontLarge  = "large"
)

// BlockStyle holds the per-type rendering hints of a content block.
// Which fields apply depends on the block type: TextAlign applies to
// all, FontSize to text and subtitle blocks, Caption to image blocks.
// NormalizeStyle clears fields that do not apply.
type BlockStyle struct {
	TextAlign string `json:"textAlign"`
	FontSize  string `json:"fontSize,omitempty"`
	Caption   string `json:"caption,omitempty"`
}

// DefaultStyle returns the default style for a block type: text blocks
// justify, subtitle and image blocks align left.
func DefaultStyle(t BlockType) BlockStyle {
	switch t {
	case BlockTypeText:
		return BlockStyle{TextAlign: AlignJustify}
	case BlockTypeSubtitle:
		return BlockStyle{TextAlign: AlignLeft}
	case BlockTypeImage:
		return BlockStyle{TextAlign: AlignLeft}
	}
	return BlockStyle{TextAlign: AlignLeft}
}

// NormalizeStyle clamps a style to the fields valid for the block type,
// substituting defaults for missing or unrecognized values. Defaulting
// happens here, at construction, so every style flowing through the
// system is complete.
func NormalizeStyle(t BlockType, s BlockStyle) BlockStyle {
	switch s.TextAlign {
	case AlignLeft, AlignCenter, AlignRight, AlignJustify:
	default:
		s.TextAlign = DefaultStyle(t).TextAlign
	}

	switch s.FontSize {
	case FontSmall, FontMedium, FontLarge:
	default:
		s.FontSize = ""
	}

	switch t {
	case BlockTypeText, BlockTypeSubtitle:
		s.Caption = ""
	case BlockTypeImage:
		s.FontSize = ""
	}

	return s
}

// ParseStyle deserializes a stored style payload for a block of the
// given type. A malformed payload falls back to the type default so a
// corrupted row can never break the read path.
func ParseStyle(t BlockType, raw []byte) BlockStyle {
	if len(raw) == 0 {
		return DefaultStyle(t)
	}
	var s BlockStyle
	if err := json.Unmarshal(raw, &s); err != nil {
		return DefaultStyle(t)
	}
	return NormalizeStyle(t, s)
}

// MarshalStyle serializes a style for storage, normalizing it first.
func MarshalStyle(t BlockType, s BlockStyle) ([]byte, error) {
	return json.Marshal(NormalizeStyle(t, s))
}
