package cli

import "fmt"

type ThemeCmd struct {
	Theme  string `arg:"" optional:"" help:"Theme to set (dark|light). Omit to show the current theme."`
	Toggle bool   `short:"t" help:"Toggle between dark and light."`
}

func (c *ThemeCmd) Validate() error {
	if c.Theme != "" && c.Toggle {
		return fmt.Errorf("cannot set and toggle at the same time")
	}
	return nil
}

func (c *ThemeCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if c.Toggle {
		theme, err := ctx.Store.ToggleTheme()
		if err != nil {
			return err
		}
		fmt.Printf("Theme: %s\n", theme)
		return nil
	}

	if c.Theme != "" {
		if err := ctx.Store.SetTheme(c.Theme); err != nil {
			return err
		}
		fmt.Printf("Theme: %s\n", c.Theme)
		return nil
	}

	theme, err := ctx.Store.Theme()
	if err != nil {
		return err
	}
	fmt.Printf("Theme: %s\n", theme)
	return nil
}
