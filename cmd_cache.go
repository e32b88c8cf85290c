package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordler/internal/wordlist"
	"github.com/robalobadob/wordler/internal/words"
)

func newInitCacheCmd(cfg Config) *cobra.Command {
	var (
		dir    = cfg.CacheDir
		source = cfg.WordsSource
		force  bool
	)
	cmd := &cobra.Command{
		Use:   "init-cache",
		Short: "Download the word list into the local cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wordlist.New(dir, source)
			if err != nil {
				return err
			}
			if force {
				if err := c.Fetch(cmd.Context()); err != nil {
					return err
				}
			}
			rc, err := c.Load(cmd.Context())
			if err != nil {
				return err
			}
			defer rc.Close()
			d, err := words.Read(rc)
			if err != nil {
				return fmt.Errorf("read cache: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d words cached in %s\n", d.Len(), c.Path())
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", dir, "cache directory (default: user cache dir)")
	cmd.Flags().StringVar(&source, "source", source, "word list URL (default: "+wordlist.DefaultSource+")")
	cmd.Flags().BoolVar(&force, "force", false, "download again even if a cache exists")
	return cmd
}
