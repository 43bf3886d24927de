package services

import (
	"fmt"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
)

// Block tree edits are copy-on-write: every function returns a new tree and
// leaves its input untouched, so observers never see a half-applied edit.

// AddBlock inserts block at index at, or appends it when at is out of range.
// Ids already present in the tree are rejected.
func AddBlock(tree []domain.Block, block domain.Block, at int) ([]domain.Block, error) {
	if err := checkInsert(tree, block); err != nil {
		return domain.CloneBlocks(tree), err
	}
	return insertAt(domain.CloneBlocks(tree), block.Clone(), at), nil
}

// AddChildBlock nests block under parentID. The parent must exist and be a
// container type.
func AddChildBlock(tree []domain.Block, parentID string, block domain.Block, at int) ([]domain.Block, error) {
	out := domain.CloneBlocks(tree)
	if err := checkInsert(tree, block); err != nil {
		return out, err
	}

	parent := findBlockRef(out, parentID)
	if parent == nil {
		return out, fmt.Errorf("%w: %s", domain.ErrBlockNotFound, parentID)
	}
	if !parent.Type.IsContainer() {
		return out, fmt.Errorf("%w: %s", domain.ErrNotContainer, parent.Type)
	}
	parent.Children = insertAt(parent.Children, block.Clone(), at)
	return out, nil
}

// UpdateBlockProperties shallow-merges partial into the properties of the
// block with the given id, searching all depths. A missing id returns
// ErrBlockNotFound with the tree unchanged.
func UpdateBlockProperties(tree []domain.Block, id string, partial map[string]any) ([]domain.Block, error) {
	out := domain.CloneBlocks(tree)
	block := findBlockRef(out, id)
	if block == nil {
		return out, fmt.Errorf("%w: %s", domain.ErrBlockNotFound, id)
	}
	if block.Properties == nil {
		block.Properties = make(map[string]any, len(partial))
	}
	for key, value := range partial {
		block.Properties[key] = domain.CloneValue(value)
	}
	return out, nil
}

// RemoveBlock removes the first block with the given id, at any depth,
// together with its children. A missing id returns ErrBlockNotFound with the
// tree unchanged.
func RemoveBlock(tree []domain.Block, id string) ([]domain.Block, error) {
	out, removed := removeFirst(domain.CloneBlocks(tree), id)
	if !removed {
		return out, fmt.Errorf("%w: %s", domain.ErrBlockNotFound, id)
	}
	return out, nil
}

// ReorderSiblings returns the siblings named by ids, in that order, with
// 1-based Order values. Siblings missing from ids are dropped and unknown ids
// are ignored. Applying the same ids twice changes nothing the second time.
func ReorderSiblings(siblings []domain.Block, ids []string) []domain.Block {
	byID := make(map[string]int, len(siblings))
	for i := range siblings {
		if _, dup := byID[siblings[i].ID]; !dup {
			byID[siblings[i].ID] = i
		}
	}

	out := make([]domain.Block, 0, len(ids))
	for _, id := range ids {
		i, ok := byID[id]
		if !ok {
			continue
		}
		delete(byID, id)
		block := siblings[i].Clone()
		block.Order = len(out) + 1
		out = append(out, block)
	}
	return out
}

// ReorderBlocks reorders the top level of the tree when parentID is empty,
// otherwise the children of parentID.
func ReorderBlocks(tree []domain.Block, parentID string, ids []string) ([]domain.Block, error) {
	if parentID == "" {
		return ReorderSiblings(tree, ids), nil
	}

	out := domain.CloneBlocks(tree)
	parent := findBlockRef(out, parentID)
	if parent == nil {
		return out, fmt.Errorf("%w: %s", domain.ErrBlockNotFound, parentID)
	}
	parent.Children = ReorderSiblings(parent.Children, ids)
	return out, nil
}

// FindBlock returns a copy of the first block with the given id.
func FindBlock(tree []domain.Block, id string) (domain.Block, bool) {
	return domain.FindBlock(tree, id)
}

// CollectBlockIDs returns every id in the tree in depth-first preorder.
func CollectBlockIDs(tree []domain.Block) []string {
	var ids []string
	var walk func(blocks []domain.Block)
	walk = func(blocks []domain.Block) {
		for i := range blocks {
			ids = append(ids, blocks[i].ID)
			walk(blocks[i].Children)
		}
	}
	walk(tree)
	return ids
}

// CloneTree deep-copies a tree.
func CloneTree(tree []domain.Block) []domain.Block {
	return domain.CloneBlocks(tree)
}

// checkInsert validates a block (and its subtree) for insertion into tree.
func checkInsert(tree []domain.Block, block domain.Block) error {
	if block.ID == "" {
		return fmt.Errorf("%w: block id is required", domain.ErrInvalidInput)
	}

	existing := make(map[string]bool)
	for _, id := range CollectBlockIDs(tree) {
		existing[id] = true
	}

	var check func(b domain.Block) error
	check = func(b domain.Block) error {
		if existing[b.ID] {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateBlockID, b.ID)
		}
		existing[b.ID] = true
		if len(b.Children) > 0 && !b.Type.IsContainer() {
			return fmt.Errorf("%w: %s", domain.ErrNotContainer, b.Type)
		}
		for i := range b.Children {
			if err := check(b.Children[i]); err != nil {
				return err
			}
		}
		return nil
	}
	return check(block)
}

func insertAt(blocks []domain.Block, block domain.Block, at int) []domain.Block {
	if at < 0 || at >= len(blocks) {
		return append(blocks, block)
	}
	blocks = append(blocks, domain.Block{})
	copy(blocks[at+1:], blocks[at:])
	blocks[at] = block
	return blocks
}

// findBlockRef returns a pointer into blocks, which must be a private copy.
func findBlockRef(blocks []domain.Block, id string) *domain.Block {
	for i := range blocks {
		if blocks[i].ID == id {
			return &blocks[i]
		}
		if found := findBlockRef(blocks[i].Children, id); found != nil {
			return found
		}
	}
	return nil
}

func removeFirst(blocks []domain.Block, id string) ([]domain.Block, bool) {
	for i := range blocks {
		if blocks[i].ID == id {
			return append(blocks[:i], blocks[i+1:]...), true
		}
		if children, ok := removeFirst(blocks[i].Children, id); ok {
			blocks[i].Children = children
			return blocks, true
		}
	}
	return blocks, false
}
