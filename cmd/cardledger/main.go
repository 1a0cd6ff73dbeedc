// Command cardledger computes ledger reports from the command line.
//
// Usage:
//
//	cardledger report  [-report all] [-ref "2021-12-31 16:44:00"] [-category C] [-month 2021-12] [-unit 50] [-q text] [-out dir]
//	cardledger import  -from operations.csv
//	cardledger enqueue [-report all] [-ref ...] [-category C] [-month M] [-unit N] [-q text]
//	cardledger runs    [-limit 20]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"cardledger/internal/amqp"
	"cardledger/internal/cli"
	"cardledger/internal/config"
	"cardledger/internal/core"
	"cardledger/internal/engine"
	"cardledger/internal/log"
	"cardledger/internal/report"
	"cardledger/internal/services"
	"cardledger/internal/sheets/memory"
	"cardledger/internal/storage"
	"cardledger/internal/worker"
)

const usage = `usage: cardledger <command> [flags]

commands:
  report   compute reports and write them as JSON files
  import   copy a statement export into the sqlite ledger
  enqueue  queue a report request for the report worker
  runs     list recent report runs from the sqlite ledger
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, logger := cli.Bootstrap()
	ctx := context.Background()

	var err error
	switch os.Args[1] {
	case "report":
		err = runReport(ctx, cfg, logger, os.Args[2:])
	case "import":
		err = runImport(ctx, cfg, logger, os.Args[2:])
	case "enqueue":
		err = runEnqueue(ctx, cfg, logger, os.Args[2:])
	case "runs":
		err = runRuns(ctx, cfg, logger, os.Args[2:])
	case "-h", "--help", "help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	if err != nil {
		logger.Error("Command failed", log.FieldOperation, os.Args[1], log.FieldError, err)
		os.Exit(1)
	}
}

// reportFlags are shared by report and enqueue.
type reportFlags struct {
	report   string
	ref      string
	category string
	month    string
	unit     int64
	query    string
}

func bindReportFlags(fs *flag.FlagSet, cfg *config.Config) *reportFlags {
	f := &reportFlags{}
	fs.StringVar(&f.report, "report", worker.ReportAll, "report name, or \"all\" for the default batch: "+strings.Join(services.ReportNames(), ", "))
	fs.StringVar(&f.ref, "ref", cfg.ReferenceTime, "reference time YYYY-MM-DD HH:MM:SS (default now)")
	fs.StringVar(&f.category, "category", cfg.ReportCategory, "category for spending_by_category")
	fs.StringVar(&f.month, "month", cfg.InvestMonth, "month YYYY-MM for investment_jar (default reference month)")
	fs.Int64Var(&f.unit, "unit", int64(cfg.RoundingUnit), "investment jar rounding unit")
	fs.StringVar(&f.query, "q", "", "search query")
	return f
}

func runReport(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	f := bindReportFlags(fs, cfg)
	out := fs.String("out", cfg.OutputDir, "output directory")
	fs.Parse(args)

	ref, err := reference(f.ref)
	if err != nil {
		return err
	}

	if settings, err := config.LoadUserSettings(cfg.UserSettingsPath); err == nil {
		logger.Info("Loaded user settings",
			"currencies", strings.Join(settings.Currencies, ","),
			"stocks", strings.Join(settings.Stocks, ","))
	} else {
		logger.Debug("No user settings", log.FieldError, err)
	}

	res := cli.OpenBackend(ctx, logger, cfg)
	defer res.Close()

	svc := services.NewReportService(res.Backend, engine.New(logger), report.NewSink(*out, logger), res.Runs, logger)

	var reqs []services.Request
	if f.report == worker.ReportAll {
		reqs = services.WithInvestMonth(services.Defaults(ref, f.category, f.unit), f.month)
	} else {
		reqs = []services.Request{f.request(ref)}
	}

	results, err := svc.GenerateAll(ctx, reqs)
	if err != nil {
		return err
	}
	for _, r := range results {
		fmt.Println(r.Path)
	}
	return nil
}

func runImport(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	from := fs.String("from", cfg.OperationsPath, "statement export (.csv or .json)")
	dbPath := fs.String("db", cfg.SQLiteDBPath, "sqlite ledger path")
	fs.Parse(args)

	src, err := memory.NewFromFile(*from)
	if err != nil {
		return err
	}

	repo, err := storage.NewSQLiteRepository(*dbPath, logger)
	if err != nil {
		return err
	}
	defer repo.Close()

	result, err := services.Import(ctx, src, repo, logger)
	if err != nil {
		return err
	}
	fmt.Printf("read %d records, inserted %d\n", result.Read, result.Inserted)
	return nil
}

func runEnqueue(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("enqueue", flag.ExitOnError)
	f := bindReportFlags(fs, cfg)
	fs.Parse(args)

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
	if err != nil {
		return err
	}
	defer client.Close()

	msg := amqp.NewReportRequest(f.report)
	msg.Reference = f.ref
	msg.Category = f.category
	msg.Month = f.month
	msg.RoundingUnit = f.unit
	msg.Query = f.query

	if err := client.PublishReportRequest(ctx, msg); err != nil {
		return err
	}
	fmt.Println(msg.ID)
	return nil
}

func runRuns(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ExitOnError)
	limit := fs.Int("limit", 20, "number of runs to list")
	dbPath := fs.String("db", cfg.SQLiteDBPath, "sqlite ledger path")
	fs.Parse(args)

	repo, err := storage.NewSQLiteRepository(*dbPath, logger)
	if err != nil {
		return err
	}
	defer repo.Close()

	runs, err := repo.RecentRuns(ctx, *limit)
	if err != nil {
		return err
	}
	for _, r := range runs {
		fmt.Printf("%s\t%s\t%s\t%s\t%s\n", r.CreatedAt.Format(time.RFC3339), r.ID, r.Report, r.Status, r.OutputPath)
	}
	return nil
}

func (f *reportFlags) request(ref time.Time) services.Request {
	month := f.month
	if month == "" {
		month = fmt.Sprintf("%04d-%02d", ref.Year(), int(ref.Month()))
	}
	return services.Request{
		Report:       f.report,
		Reference:    ref,
		Category:     f.category,
		Month:        month,
		RoundingUnit: f.unit,
		Query:        f.query,
	}
}

func reference(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Now(), nil
	}
	return core.ParseReference(s)
}
