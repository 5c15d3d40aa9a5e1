package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/okra-platform/postloop/internal/config"
	"github.com/okra-platform/postloop/internal/memhost"
	"github.com/okra-platform/postloop/internal/posts"
	"github.com/okra-platform/postloop/internal/watch"
)

// ListOptions contains options for the list command. Zero values defer to postloop.json.
type ListOptions struct {
	ConfigPath string
	Source     string
	PostType   string
	PerPage    int
	Page       int
	Status     []string
	OrderBy    string
	Order      string

	// Iterator predicates
	Authors []int64
	Search  string

	Watch bool
}

// List prints one page of posts from the posts file
func (c *Controller) List(ctx context.Context, opts ListOptions) error {
	cfg, source, err := c.resolveList(opts)
	if err != nil {
		return err
	}

	if !opts.Watch {
		return c.list(ctx, cfg, source, opts)
	}

	if err := c.list(ctx, cfg, source, opts); err != nil {
		c.Logger.Error().Err(err).Msg("failed to list posts")
	}

	fw, err := watch.NewFileWatcher([]string{source}, func(path string, op fsnotify.Op) {
		c.Logger.Info().Str("path", path).Str("op", op.String()).Msg("posts file changed, listing again")
		if err := c.list(ctx, cfg, source, opts); err != nil {
			c.Logger.Error().Err(err).Msg("failed to list posts")
		}
	}, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to watch posts file: %w", err)
	}
	defer fw.Close()

	if err := fw.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// resolveList merges flags over the configuration file and resolves the posts file path
func (c *Controller) resolveList(opts ListOptions) (*config.Config, string, error) {
	var (
		cfg  *config.Config
		root string
		err  error
	)

	if opts.ConfigPath != "" {
		cfg, err = config.LoadConfigFromPath(opts.ConfigPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load configuration: %w", err)
		}
		root = filepath.Dir(opts.ConfigPath)
	} else {
		cfg, root, err = config.LoadConfig()
		if errors.Is(err, config.ErrConfigNotFound) {
			cfg, root = config.Default(), ""
		} else if err != nil {
			return nil, "", fmt.Errorf("failed to load configuration: %w", err)
		}
	}

	if opts.PostType != "" {
		cfg.PostType = opts.PostType
	}
	if opts.PerPage != 0 {
		cfg.PerPage = opts.PerPage
	}
	if len(opts.Status) > 0 {
		cfg.Status = opts.Status
	}
	if opts.OrderBy != "" {
		cfg.OrderBy = opts.OrderBy
	}
	if opts.Order != "" {
		cfg.Order = opts.Order
	}

	source := opts.Source
	if source == "" {
		source = cfg.SourcePath(root)
	}

	return cfg, source, nil
}

func (c *Controller) list(ctx context.Context, cfg *config.Config, source string, opts ListOptions) error {
	store := memhost.NewStore(c.Logger)
	if err := store.LoadFile(source); err != nil {
		return fmt.Errorf("failed to load posts: %w", err)
	}

	page := max(opts.Page, 1)

	builder := posts.NewBuilder(store, cfg.PostType,
		posts.WithConfigure(posts.PerPage(cfg.PerPage)),
		posts.WithConfigure(posts.Page(page)),
		posts.WithConfigure(posts.Status(cfg.Status...)),
		posts.WithConfigure(posts.OrderBy(cfg.OrderBy, cfg.Order)),
		posts.WithIteratorOptions(posts.WithLogger(c.Logger)),
	)

	it, err := builder.Build(ctx)
	if err != nil {
		return err
	}

	if len(opts.Authors) > 0 {
		it.Filter(posts.ByAuthor(opts.Authors...))
	}
	if opts.Search != "" {
		it.Filter(posts.TitleContains(opts.Search))
	}

	w := c.out()
	fmt.Fprintf(w, "# %s: %d found, page %d of %d\n", cfg.PostType, it.Count(), page, it.PageCount())

	shown := 0
	for key, post := range it.All() {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\n", key, post.ID, post.Date.Format(time.DateOnly), post.Title)
		shown++
	}
	if shown == 0 {
		fmt.Fprintln(w, "no posts")
	}

	return nil
}
