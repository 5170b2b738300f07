// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render turns persisted content blocks into the view list the
// public article page consumes. Text blocks pass through the Markdown
// pipeline; subtitles and images map to fixed HTML shapes.
package render

import (
	"fmt"
	"html"
	"html/template"

	"desaportal/internal/markdown"
	"desaportal/internal/models"
)

// BlockView is one rendered block with its display metadata.
type BlockView struct {
	Type     models.BlockType  `json:"type"`
	HTML     template.HTML     `json:"html"`
	Style    models.BlockStyle `json:"style"`
	Position int               `json:"position"`
	IsFirst  bool              `json:"is_first"`
	IsLast   bool              `json:"is_last"`
}

// Blocks renders an ordered block list for display. The input is
// assumed already ordered; positions are taken from list order. A block
// with an unrecognized type is an error, not a skip.
func Blocks(blocks []models.ContentBlock) ([]BlockView, error) {
	views := make([]BlockView, 0, len(blocks))
	for i, b := range blocks {
		h, err := Block(b)
		if err != nil {
			return nil, err
		}
		views = append(views, BlockView{
			Type:     b.Type,
			HTML:     h,
			Style:    models.NormalizeStyle(b.Type, b.Style),
			Position: i,
			IsFirst:  i == 0,
			IsLast:   i == len(blocks)-1,
		})
	}
	return views, nil
}

// Block renders a single block to HTML.
func Block(b models.ContentBlock) (template.HTML, error) {
	switch b.Type {
	case models.BlockTypeText:
		out, err := markdown.ToHTML(b.Content)
		if err != nil {
			return "", fmt.Errorf("render text block: %w", err)
		}
		return template.HTML(out), nil
	case models.BlockTypeSubtitle:
		return template.HTML("<h2>" + html.EscapeString(b.Content) + "</h2>"), nil
	case models.BlockTypeImage:
		return imageHTML(b), nil
	default:
		return "", fmt.Errorf("render block: unknown type %q", b.Type)
	}
}

func imageHTML(b models.ContentBlock) template.HTML {
	src := html.EscapeString(b.Content)
	caption := models.NormalizeStyle(b.Type, b.Style).Caption
	if caption == "" {
		return template.HTML(fmt.Sprintf(`<figure><img src="%s" alt=""></figure>`, src))
	}
	esc := html.EscapeString(caption)
	return template.HTML(fmt.Sprintf(
		`<figure><img src="%s" alt="%s"><figcaption>%s</figcaption></figure>`, src, esc, esc))
}
