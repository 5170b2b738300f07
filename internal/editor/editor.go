// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package editor holds the working copy of an article's block list while
// it is being edited, independent of the persisted copy. Every mutation
// is an in-memory list operation; nothing here touches the database.
// Blocks are addressed by a stable local ref assigned on load or add, so
// editing works the same for blocks that have no server id yet.
package editor

import (
	"github.com/google/uuid"

	"desaportal/internal/models"
)

// Direction is a move direction for MoveBlock.
type Direction int

const (
	Up Direction = iota
	Down
)

// Block is one entry in the working copy. Ref is the stable local
// handle; ID is set only for blocks that already exist server-side.
// Position is implicit — it is the block's index in the list.
type Block struct {
	Ref     string
	ID      *uuid.UUID
	Type    models.BlockType
	Content string
	Style   models.BlockStyle
}

// Stats are per-type block counts derived from the working copy.
type Stats struct {
	Text     int
	Subtitle int
	Image    int
}

// Total is the sum over all three type counts.
func (s Stats) Total() int {
	return s.Text + s.Subtitle + s.Image
}

// Editor is the in-memory block list for one editing session.
type Editor struct {
	blocks []Block
}

// New creates an editing session seeded from persisted blocks. Each
// block gets a fresh local ref; server ids are retained for reference.
func New(persisted []models.ContentBlock) *Editor {
	e := &Editor{blocks: make([]Block, 0, len(persisted))}
	for _, b := range persisted {
		id := b.ID
		e.blocks = append(e.blocks, Block{
			Ref:     uuid.NewString(),
			ID:      &id,
			Type:    b.Type,
			Content: b.Content,
			Style:   models.NormalizeStyle(b.Type, b.Style),
		})
	}
	return e
}

// AddBlock appends a new empty block of the given type with its default
// style and returns its local ref. Always succeeds.
func (e *Editor) AddBlock(t models.BlockType) string {
	b := Block{
		Ref:   uuid.NewString(),
		Type:  t,
		Style: models.DefaultStyle(t),
	}
	e.blocks = append(e.blocks, b)
	return b.Ref
}

// EditBlock replaces the content (and optionally the style) of the
// addressed block in place. Position is unchanged. Returns false if the
// ref is unknown.
func (e *Editor) EditBlock(ref, content string, style *models.BlockStyle) bool {
	i := e.indexOf(ref)
	if i < 0 {
		return false
	}
	e.blocks[i].Content = content
	if style != nil {
		e.blocks[i].Style = models.NormalizeStyle(e.blocks[i].Type, *style)
	}
	return true
}

// DeleteBlock removes the addressed block; later blocks shift down
// implicitly. Returns false if the ref is unknown.
func (e *Editor) DeleteBlock(ref string) bool {
	i := e.indexOf(ref)
	if i < 0 {
		return false
	}
	e.blocks = append(e.blocks[:i], e.blocks[i+1:]...)
	return true
}

// MoveBlock swaps the addressed block with its neighbor in the given
// direction. Moving the first block up or the last block down is a
// no-op, not an error. Returns true if the order changed.
func (e *Editor) MoveBlock(ref string, dir Direction) bool {
	i := e.indexOf(ref)
	if i < 0 {
		return false
	}

	j := i
	switch dir {
	case Up:
		j = i - 1
	case Down:
		j = i + 1
	}
	if j < 0 || j >= len(e.blocks) || j == i {
		return false
	}

	e.blocks[i], e.blocks[j] = e.blocks[j], e.blocks[i]
	return true
}

// Blocks returns a copy of the working list in display order.
func (e *Editor) Blocks() []Block {
	out := make([]Block, len(e.blocks))
	copy(out, e.blocks)
	return out
}

// Len returns the number of blocks in the working copy.
func (e *Editor) Len() int {
	return len(e.blocks)
}

// Statistics counts blocks by type. The three counts always sum to the
// list length — no block is left uncounted.
func (e *Editor) Statistics() Stats {
	var s Stats
	for _, b := range e.blocks {
		switch b.Type {
		case models.BlockTypeText:
			s.Text++
		case models.BlockTypeSubtitle:
			s.Subtitle++
		case models.BlockTypeImage:
			s.Image++
		}
	}
	return s
}

// Submission converts the working copy into the block list sent on
// save. Order is positional; the server renumbers from it.
func (e *Editor) Submission() []models.ContentBlock {
	out := make([]models.ContentBlock, 0, len(e.blocks))
	for i, b := range e.blocks {
		cb := models.ContentBlock{
			Type:       b.Type,
			Content:    b.Content,
			OrderIndex: i,
			Style:      b.Style,
		}
		if b.ID != nil {
			cb.ID = *b.ID
		}
		out = append(out, cb)
	}
	return out
}

func (e *Editor) indexOf(ref string) int {
	for i, b := range e.blocks {
		if b.Ref == ref {
			return i
		}
	}
	return -1
}
