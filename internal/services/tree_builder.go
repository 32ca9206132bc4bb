package services

import (
	"sort"
	"strings"

	"github.com/torgmarket/catalog-api/internal/i18n"
	"github.com/torgmarket/catalog-api/internal/models"
)

// FlatTreeItem is one row of a flat hierarchy list fed to the tree builder.
// An empty ParentID marks a declared root.
type FlatTreeItem struct {
	ID       string
	ParentID string
	Slug     string
	Name     i18n.Field
	Variants map[string]i18n.Field
}

// TreeBuilder reconstructs parent/child hierarchies from flat lists. Nodes
// are held in an arena keyed by ID with a parent index, so materialization is
// index lookup rather than pointer chasing and cycles cannot recurse forever.
type TreeBuilder struct {
	localizer *i18n.Localizer
}

// NewTreeBuilder creates a new tree builder instance
func NewTreeBuilder(localizer *i18n.Localizer) *TreeBuilder {
	return &TreeBuilder{localizer: localizer}
}

// BuildTree materializes the hierarchy of items as sorted TreeNodes. An item
// whose declared parent is absent from the input is promoted to a root; this
// mirrors the reference behavior for inconsistent flat lists. Display names
// prefer the gendered variant when genderOverride matches one.
func (b *TreeBuilder) BuildTree(items []FlatTreeItem, locale, genderOverride string) []models.TreeNode {
	arena := make(map[string]int, len(items))
	for i, item := range items {
		arena[item.ID] = i
	}

	childIndex := make(map[string][]int, len(items))
	var rootIndexes []int
	for i, item := range items {
		if item.ParentID == "" {
			rootIndexes = append(rootIndexes, i)
			continue
		}
		if _, ok := arena[item.ParentID]; !ok {
			// Orphan: parent missing from the flat list, promote to root
			rootIndexes = append(rootIndexes, i)
			continue
		}
		childIndex[item.ParentID] = append(childIndex[item.ParentID], i)
	}

	visited := make(map[string]bool, len(items))
	return b.materialize(items, childIndex, rootIndexes, visited, locale, genderOverride)
}

// materialize builds one level of nodes, recursing through the child index
func (b *TreeBuilder) materialize(items []FlatTreeItem, childIndex map[string][]int, indexes []int, visited map[string]bool, locale, genderOverride string) []models.TreeNode {
	nodes := make([]models.TreeNode, 0, len(indexes))
	for _, i := range indexes {
		item := items[i]
		if visited[item.ID] {
			continue
		}
		visited[item.ID] = true

		children := b.materialize(items, childIndex, childIndex[item.ID], visited, locale, genderOverride)
		nodes = append(nodes, models.TreeNode{
			ID:            item.ID,
			Slug:          item.Slug,
			Name:          b.resolveName(item, locale, genderOverride),
			ChildrenCount: len(children),
			Children:      children,
		})
	}

	sort.SliceStable(nodes, func(i, j int) bool {
		return strings.ToLower(nodes[i].Name) < strings.ToLower(nodes[j].Name)
	})
	return nodes
}

// resolveName prefers a gendered variant translation when one exists
func (b *TreeBuilder) resolveName(item FlatTreeItem, locale, genderOverride string) string {
	if genderOverride != "" {
		if variant, ok := item.Variants[genderOverride]; ok {
			if name := b.localizer.Resolve(variant, locale); name != "" {
				return name
			}
		}
	}
	return b.localizer.Resolve(item.Name, locale)
}

// OptionsToFlatTree adapts an option group's flat list for the tree builder
func OptionsToFlatTree(options []models.Option) []FlatTreeItem {
	items := make([]FlatTreeItem, 0, len(options))
	for _, option := range options {
		item := FlatTreeItem{
			ID:       option.ID.Hex(),
			Slug:     option.Slug,
			Name:     option.NameI18n,
			Variants: option.Variants,
		}
		if option.ParentID != nil {
			item.ParentID = option.ParentID.Hex()
		}
		items = append(items, item)
	}
	return items
}

// CategoriesToFlatTree adapts a rubric's category list for the tree builder
func CategoriesToFlatTree(categories []models.Category) []FlatTreeItem {
	items := make([]FlatTreeItem, 0, len(categories))
	for _, category := range categories {
		item := FlatTreeItem{
			ID:       category.ID.Hex(),
			Slug:     category.Slug,
			Name:     category.NameI18n,
			Variants: category.Variants,
		}
		if category.ParentID != nil {
			item.ParentID = category.ParentID.Hex()
		}
		items = append(items, item)
	}
	return items
}
