// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import (
	"strings"
	"testing"

	"desaportal/internal/models"
)

func TestBlockText(t *testing.T) {
	h, err := Block(models.ContentBlock{
		Type:    models.BlockTypeText,
		Content: "Halo **warga** desa",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(h), "<strong>warga</strong>") {
		t.Errorf("markdown not rendered: %s", h)
	}
}

func TestBlockSubtitleEscapes(t *testing.T) {
	h, err := Block(models.ContentBlock{
		Type:    models.BlockTypeSubtitle,
		Content: "Program <script>",
	})
	if err != nil {
		t.Fatal(err)
	}
	want := "<h2>Program &lt;script&gt;</h2>"
	if string(h) != want {
		t.Errorf("got %s, want %s", h, want)
	}
}

func TestBlockImageCaption(t *testing.T) {
	h, err := Block(models.ContentBlock{
		Type:    models.BlockTypeImage,
		Content: "/uploads/balai.jpg",
		Style:   models.BlockStyle{TextAlign: models.AlignCenter, Caption: "Balai desa"},
	})
	if err != nil {
		t.Fatal(err)
	}
	s := string(h)
	if !strings.Contains(s, `src="/uploads/balai.jpg"`) {
		t.Errorf("missing src: %s", s)
	}
	if !strings.Contains(s, "<figcaption>Balai desa</figcaption>") {
		t.Errorf("missing caption: %s", s)
	}

	// no caption, no figcaption element
	h, err = Block(models.ContentBlock{Type: models.BlockTypeImage, Content: "/x.jpg"})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(h), "figcaption") {
		t.Errorf("unexpected figcaption: %s", h)
	}
}

func TestBlockUnknownType(t *testing.T) {
	if _, err := Block(models.ContentBlock{Type: "video"}); err == nil {
		t.Fatal("expected an error for an unknown block type")
	}
}

func TestBlocksPositions(t *testing.T) {
	views, err := Blocks([]models.ContentBlock{
		{Type: models.BlockTypeSubtitle, Content: "A"},
		{Type: models.BlockTypeText, Content: "b"},
		{Type: models.BlockTypeImage, Content: "/c.jpg"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(views) != 3 {
		t.Fatalf("len = %d", len(views))
	}
	if !views[0].IsFirst || views[0].IsLast {
		t.Error("first view flags wrong")
	}
	if views[2].Position != 2 || !views[2].IsLast {
		t.Error("last view flags wrong")
	}
	// list rendering halts on the first bad block
	if _, err := Blocks([]models.ContentBlock{{Type: "gallery"}}); err == nil {
		t.Error("expected an error from the bad block")
	}
}
