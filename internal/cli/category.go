package cli

import (
	"fmt"
	"strings"
)

// resolveCategoryID finds a category by exact ID or by unique
// case-insensitive name.
func resolveCategoryID(ctx *Context, ref string) (string, error) {
	if category, err := ctx.Store.GetCategory(ref); err == nil {
		return category.ID, nil
	}

	categories, err := ctx.Store.ListCategories()
	if err != nil {
		return "", err
	}

	var matches []string
	for _, category := range categories {
		if strings.EqualFold(category.Name, ref) {
			matches = append(matches, category.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no category matching %q", ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("category name %q is ambiguous, use the ID", ref)
	}
}

type CategoryAddCmd struct {
	Name string `arg:"" help:"Category name."`
}

func (c *CategoryAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	category, err := ctx.Store.AddCategory(c.Name)
	if err != nil {
		return err
	}

	fmt.Printf("Added category: %s (ID: %s)\n", category.Name, category.ID)
	return nil
}

type CategoryListCmd struct{}

func (c *CategoryListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	categories, err := ctx.Store.ListCategories()
	if err != nil {
		return err
	}

	if len(categories) == 0 {
		fmt.Println("No categories yet. Add one with 'ownit category add'.")
		return nil
	}

	fmt.Printf("%-36s  %s\n", "ID", "NAME")
	for _, category := range categories {
		fmt.Printf("%-36s  %s\n", category.ID, category.Name)
	}

	return nil
}

type CategoryRenameCmd struct {
	Category string `arg:"" help:"Category ID or name."`
	Name     string `arg:"" help:"New category name."`
}

func (c *CategoryRenameCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	id, err := resolveCategoryID(ctx, c.Category)
	if err != nil {
		return err
	}

	category, err := ctx.Store.RenameCategory(id, c.Name)
	if err != nil {
		return err
	}

	fmt.Printf("Renamed category to: %s\n", category.Name)
	return nil
}

type CategoryDeleteCmd struct {
	Category string `arg:"" help:"Category ID or name."`
}

func (c *CategoryDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	id, err := resolveCategoryID(ctx, c.Category)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteCategory(id); err != nil {
		return err
	}

	fmt.Println("Deleted category. Habits that used it are now uncategorized.")
	return nil
}
