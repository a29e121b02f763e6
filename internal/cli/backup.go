package cli

import (
	"fmt"

	"github.com/ownitapp/ownit/internal/backup"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	manager := backup.NewManager(ctx.Store.ConfigPath())

	path, err := manager.CreateBackup()
	if err != nil {
		return err
	}

	fmt.Printf("Created backup: %s\n", path)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	manager := backup.NewManager(ctx.Store.ConfigPath())

	backups, err := manager.ListBackups()
	if err != nil {
		return err
	}

	if len(backups) == 0 {
		fmt.Println("No backups found.")
		return nil
	}

	for _, info := range backups {
		fmt.Printf("%s  %8d bytes  %s\n", info.Timestamp.Format("2006-01-02 15:04"), info.Size, info.Path)
	}

	return nil
}

type BackupRestoreCmd struct {
	Path string `arg:"" help:"Backup file to restore from." type:"path"`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	manager := backup.NewManager(ctx.Store.ConfigPath())

	if err := manager.RestoreBackup(c.Path); err != nil {
		return err
	}

	fmt.Println("Restored storage from backup.")
	return nil
}
