// Command e6 is a small front end over the e621 client library: it fetches
// posts and prints them as JSON. Configuration comes from E6_* environment
// variables (see internal/config).
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/e6kit/e6go/internal/config"
	"github.com/e6kit/e6go/internal/logger"
	"github.com/e6kit/e6go/pkg/e621"
)

const usage = `usage:
  e6 list [tags...]   search posts (E6_BLACKLIST filters results)
  e6 get <id>         fetch a post by id
  e6 md5 <hash>       fetch a post by its 32-character md5`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "e6: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand\n%s", usage)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	client := e621.NewClient(e621.Config{
		Username:  cfg.Username,
		APIKey:    cfg.APIKey,
		UserAgent: cfg.UserAgent,
		Host:      cfg.Host,
		ForceHost: cfg.ForceHost,
		FixURLs:   cfg.FixURLs,
		Blacklist: cfg.Blacklist,
	}, nil)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch args[0] {
	case "list":
		posts, err := client.ListPosts(ctx, e621.ListOptions{Tags: strings.Join(args[1:], " ")})
		if err != nil {
			return err
		}
		log.Infow("fetched posts", "count", len(posts))
		return printJSON(posts)
	case "get":
		if len(args) != 2 {
			return fmt.Errorf("get takes exactly one id\n%s", usage)
		}
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("post id must be numeric: %q", args[1])
		}
		post, err := client.GetPostByID(ctx, id)
		if err != nil {
			return err
		}
		log.Infow("fetched post", "id", post.ID)
		return printJSON(post)
	case "md5":
		if len(args) != 2 {
			return fmt.Errorf("md5 takes exactly one hash\n%s", usage)
		}
		post, err := client.GetPostByMD5(ctx, args[1])
		if err != nil {
			return err
		}
		log.Infow("fetched post", "id", post.ID, "md5", args[1])
		return printJSON(post)
	default:
		return fmt.Errorf("unknown subcommand %q\n%s", args[0], usage)
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
