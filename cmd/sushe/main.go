package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sushe-ng/sushe/internal/codec"
	"github.com/sushe-ng/sushe/internal/config"
	"github.com/sushe-ng/sushe/internal/model"
	"github.com/sushe-ng/sushe/internal/store"
	"github.com/sushe-ng/sushe/internal/tagimport"
)

func main() {
	// Command line flags
	var (
		dataFlag    = flag.String("data", "", "Store directory (overrides config)")
		verboseFlag = flag.Bool("verbose", false, "Show debug output")
	)

	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *dataFlag != "" {
		cfg.DataDir = *dataFlag
	}

	level := cfg.SlogLevel()
	if *verboseFlag {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	s, err := store.Open(cfg.DataDir, store.Options{
		Logger:            log,
		Codec:             newCodec(cfg.Points, log),
		RecentLimit:       cfg.RecentLimit,
		DefaultCollection: cfg.DefaultCollection,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		os.Exit(1)
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	cmd := flag.Arg(0)
	args := flag.Args()[1:]

	if err := run(ctx, s, log, cmd, args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, s *store.Store, log *slog.Logger, cmd string, args []string) error {
	switch cmd {
	case "collections":
		for name, lists := range s.GetCollections() {
			fmt.Printf("%s (%d lists)\n", name, len(lists))
		}

	case "lists":
		printLists(s.GetAllLists())

	case "recent":
		printLists(s.GetRecentLists(0))

	case "favorites":
		printLists(s.GetFavoriteLists())

	case "show":
		if len(args) != 1 {
			return fmt.Errorf("usage: sushe show <path>")
		}
		albums, meta, err := s.LoadList(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s (%d albums)\n\n", meta.Title, len(albums))
		for i, a := range albums {
			fmt.Printf("%3d. %s\n", i+1, a.String())
		}

	case "import":
		if len(args) != 1 {
			return fmt.Errorf("usage: sushe import <path>")
		}
		path, ok := s.ImportExternal(args[0])
		if !ok {
			return fmt.Errorf("cannot import %s", args[0])
		}
		fmt.Printf("Imported to %s\n", path)

	case "delete":
		if len(args) != 1 {
			return fmt.Errorf("usage: sushe delete <path>")
		}
		if !s.DeleteList(args[0]) {
			return fmt.Errorf("no such list: %s", args[0])
		}
		fmt.Println("Deleted.")

	case "favorite":
		if len(args) != 1 {
			return fmt.Errorf("usage: sushe favorite <path>")
		}
		if s.ToggleFavorite(args[0]) {
			fmt.Println("Marked favorite.")
		} else {
			fmt.Println("Unmarked favorite.")
		}

	case "new-collection":
		if len(args) != 1 {
			return fmt.Errorf("usage: sushe new-collection <name>")
		}
		s.CreateCollection(args[0])

	case "rename-collection":
		if len(args) != 2 {
			return fmt.Errorf("usage: sushe rename-collection <old> <new>")
		}
		if !s.RenameCollection(args[0], args[1]) {
			return fmt.Errorf("cannot rename %q to %q", args[0], args[1])
		}
		fmt.Println("Renamed.")

	case "delete-collection":
		if len(args) != 1 {
			return fmt.Errorf("usage: sushe delete-collection <name>")
		}
		if !s.DeleteCollection(args[0]) {
			return fmt.Errorf("no such collection: %s", args[0])
		}
		fmt.Println("Deleted.")

	case "migrate":
		if len(args) == 0 {
			return fmt.Errorf("usage: sushe migrate <path>...")
		}
		imported, total := s.MigrateFromPaths(args)
		fmt.Printf("Imported %d of %d lists.\n", imported, total)

	case "scan":
		if len(args) < 1 || len(args) > 2 {
			return fmt.Errorf("usage: sushe scan <music-dir> [list-name]")
		}
		imp := tagimport.New(log)
		albums, err := imp.ScanDirectory(ctx, args[0])
		if err != nil {
			return err
		}
		name := "Library Scan"
		if len(args) == 2 {
			name = args[1]
		}
		path, err := s.SaveList(albums, model.ListMetadata{Title: name}, "")
		if err != nil {
			return err
		}
		fmt.Printf("Saved %d albums to %s\n", len(albums), path)

	default:
		usage()
		return fmt.Errorf("unknown command: %s", cmd)
	}

	return nil
}

func newCodec(points []int, log *slog.Logger) *codec.Codec {
	if len(points) == 0 {
		return codec.New(nil, log)
	}
	return codec.New(codec.PointsTable(points), log)
}

func printLists(infos []store.ListInfo) {
	for _, info := range infos {
		marker := " "
		if info.IsFavorite {
			marker = "*"
		}
		fmt.Printf("%s %-30s %3d albums  [%s]  %s\n",
			marker, info.Title, info.AlbumCount, info.Collection, info.Path)
	}
}

func usage() {
	fmt.Println("SuShe - Ranked album list manager")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  sushe [flags] <command> [args]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  collections                      List collections")
	fmt.Println("  lists                            List all album lists")
	fmt.Println("  recent                           List recently opened lists")
	fmt.Println("  favorites                        List favorite lists")
	fmt.Println("  show <path>                      Print a list's ranking")
	fmt.Println("  import <path>                    Import an external list file")
	fmt.Println("  delete <path>                    Delete a list")
	fmt.Println("  favorite <path>                  Toggle a list's favorite status")
	fmt.Println("  new-collection <name>            Create a collection")
	fmt.Println("  rename-collection <old> <new>    Rename a collection")
	fmt.Println("  delete-collection <name>         Delete a collection")
	fmt.Println("  migrate <path>...                Import a batch of legacy lists")
	fmt.Println("  scan <music-dir> [list-name]     Seed a list from MP3 tags")
	fmt.Println()
	fmt.Println("For interactive mode, use: sushe-tui")
	fmt.Println()
	flag.PrintDefaults()
}
