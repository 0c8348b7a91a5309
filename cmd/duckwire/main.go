package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/spf13/cobra"

	"github.com/koustreak/duckwire/internal/config"
	"github.com/koustreak/duckwire/internal/database"
	"github.com/koustreak/duckwire/internal/database/sqlconn"
	"github.com/koustreak/duckwire/internal/dialect"
	"github.com/koustreak/duckwire/internal/filestore"
	"github.com/koustreak/duckwire/internal/filestore/minio"
	"github.com/koustreak/duckwire/internal/logger"
	"github.com/koustreak/duckwire/internal/server"
)

var (
	configPath      string
	schemaFlag      string
	tableFlag       string
	exportFlag      bool
	caseInsensitive bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "duckwire",
	Short:         "DuckDB catalog introspection over a remote connection",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the catalog of a schema as JSON",
	Long:  `Print tables, views and sequences of a schema, or a single table with --table.`,
	Args:  cobra.NoArgs,
	RunE:  runInspect,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var quoteCmd = &cobra.Command{
	Use:   "quote <ident>...",
	Short: "Quote identifiers the way generated DuckDB SQL would",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runQuote,
}

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List catalog snapshots exported to object storage",
	Args:  cobra.NoArgs,
	RunE:  runSnapshots,
}

var typeCmd = &cobra.Command{
	Use:   "type <tag>",
	Short: "Render a portable column type as DuckDB DDL",
	Long:  `Render a portable column type such as "NUMERIC(10,2)" or "text" as its DuckDB spelling.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runType,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "duckwire.yaml", "Path to the YAML config file")

	inspectCmd.Flags().StringVar(&schemaFlag, "schema", "", "Schema to inspect (default: config schema)")
	inspectCmd.Flags().StringVar(&tableFlag, "table", "", "Inspect a single table")
	inspectCmd.Flags().BoolVar(&exportFlag, "export", false, "Also upload the catalog snapshot to the export bucket")
	snapshotsCmd.Flags().StringVar(&schemaFlag, "schema", "", "Schema whose snapshots to list (default: config schema)")
	serveCmd.Flags().StringVar(&schemaFlag, "schema", "", "Default schema for requests without ?schema=")
	quoteCmd.Flags().BoolVar(&caseInsensitive, "case-insensitive", false, "Leave mixed-case identifiers unquoted")

	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(snapshotsCmd)
	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(typeCmd)
}

// session is a loaded config plus an open connection.
type session struct {
	cfg     *config.Config
	log     *logger.Logger
	dialect *dialect.Dialect
	conn    database.Conn
}

func (s *session) Close() {
	if c, ok := s.conn.(io.Closer); ok {
		if err := c.Close(); err != nil {
			s.log.WarnWith("close connection", err, nil)
		}
	}
}

func connect(ctx context.Context) (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if schemaFlag != "" {
		cfg.Schema = schemaFlag
	}

	log := logger.New(&cfg.Log)
	d := dialect.New(dialect.WithLogger(log))

	u, err := database.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	open := sqlconn.NewOpener(database.DefaultConfig(cfg.Driver, ""), sqlconn.DuckDBDSN)
	conn, err := d.Connect(ctx, u, open)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	return &session{cfg: cfg, log: log, dialect: d, conn: conn}, nil
}

func runInspect(cmd *cobra.Command, _ []string) error {
	if exportFlag && tableFlag != "" {
		return fmt.Errorf("--export applies to whole-schema snapshots only")
	}

	ctx := cmd.Context()
	s, err := connect(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	var out any
	if tableFlag != "" {
		ok, err := s.dialect.HasTable(ctx, s.conn, s.cfg.Schema, tableFlag)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("table %s not found in schema %s", tableFlag, dialect.NormalizeSchema(s.cfg.Schema))
		}
		if out, err = s.dialect.InspectTable(ctx, s.conn, s.cfg.Schema, tableFlag); err != nil {
			return err
		}
	} else {
		cat, err := s.dialect.InspectCatalog(ctx, s.conn, s.cfg.Schema)
		if err != nil {
			return err
		}
		if exportFlag {
			if err := exportCatalog(ctx, s, cat); err != nil {
				return err
			}
		}
		out = cat
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func openStore(ctx context.Context, cfg *config.Config) (filestore.Store, error) {
	if !cfg.Export.Enabled() {
		return nil, fmt.Errorf("no export bucket configured")
	}
	store, err := minio.New(ctx, &cfg.Export)
	if err != nil {
		return nil, fmt.Errorf("failed to open export bucket: %w", err)
	}
	return store, nil
}

func exportCatalog(ctx context.Context, s *session, cat *dialect.Catalog) error {
	store, err := openStore(ctx, s.cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	info, err := filestore.SaveCatalog(ctx, store, s.cfg.Export.Prefix, cat, time.Now())
	if err != nil {
		return err
	}
	s.log.With().Str("key", info.Key).Str("bucket", s.cfg.Export.Bucket).Logger().Info("catalog snapshot exported")
	return nil
}

func runSnapshots(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if schemaFlag != "" {
		cfg.Schema = schemaFlag
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	snaps, err := filestore.ListSnapshots(ctx, store, cfg.Export.Prefix, cfg.Schema)
	if err != nil {
		return err
	}
	for _, o := range snaps {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\n", o.Key, o.Size, o.LastModified.Format(time.RFC3339))
	}
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := connect(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	srv := server.New(server.Config{
		Addr:          s.cfg.Server.Addr,
		ReadTimeout:   s.cfg.Server.ReadTimeout,
		WriteTimeout:  s.cfg.Server.WriteTimeout,
		DefaultSchema: s.cfg.Schema,
	}, s.dialect, s.conn, s.log)
	return srv.Run(ctx)
}

func runQuote(cmd *cobra.Command, args []string) error {
	p := dialect.New(dialect.WithCaseSensitive(!caseInsensitive)).Preparer
	for _, ident := range args {
		if schema, table, ok := strings.Cut(ident, "."); ok {
			fmt.Fprintln(cmd.OutOrStdout(), p.FormatTable(schema, table))
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), p.Quote(ident))
	}
	return nil
}

func runType(cmd *cobra.Command, args []string) error {
	spec, err := dialect.ParseTypeSpec(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), dialect.New().Types.Render(spec))
	return nil
}
