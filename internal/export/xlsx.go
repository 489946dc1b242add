package export

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"zakat/internal/core"
	applog "zakat/internal/log"
)

const (
	sheetContributions = "Contributions"
	sheetRiceTypes     = "Rice Types"
	sheetTransactions  = "Transactions"
)

// XLSXExporter writes the whole data set to a local workbook named
// data_zakat_YYYYMMDD.xlsx: one sheet per table.
type XLSXExporter struct {
	source Source
	dir    string
	now    func() time.Time
}

var _ Exporter = (*XLSXExporter)(nil)

func NewXLSXExporter(source Source, dir string) *XLSXExporter {
	return &XLSXExporter{source: source, dir: dir, now: time.Now}
}

// Export writes the workbook and returns its path.
func (e *XLSXExporter) Export(ctx context.Context) (string, error) {
	var (
		contributions []core.Contribution
		riceTypes     []core.RiceType
		views         []core.TransactionView
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		contributions, err = e.source.ListContributions(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		riceTypes, err = e.source.ListRiceTypes(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		views, err = e.source.ListTransactionViews(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", fmt.Errorf("read export data: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetContributions); err != nil {
		return "", fmt.Errorf("name contributions sheet: %w", err)
	}
	writeHeader(f, sheetContributions, contributionHeader)
	for i, c := range contributions {
		row := i + 2
		f.SetCellValue(sheetContributions, "A"+fmt.Sprint(row), c.ID)
		f.SetCellValue(sheetContributions, "B"+fmt.Sprint(row), c.Name)
		f.SetCellValue(sheetContributions, "C"+fmt.Sprint(row), c.Kind)
		f.SetCellValue(sheetContributions, "D"+fmt.Sprint(row), core.FormatMoney(c.Amount))
		f.SetCellValue(sheetContributions, "E"+fmt.Sprint(row), c.Date.Format(core.DateLayout))
	}

	if _, err := f.NewSheet(sheetRiceTypes); err != nil {
		return "", fmt.Errorf("create rice types sheet: %w", err)
	}
	writeHeader(f, sheetRiceTypes, []string{"ID", "Name", "Price per Kg"})
	for i, rt := range riceTypes {
		row := i + 2
		f.SetCellValue(sheetRiceTypes, "A"+fmt.Sprint(row), rt.ID)
		f.SetCellValue(sheetRiceTypes, "B"+fmt.Sprint(row), rt.Name)
		f.SetCellValue(sheetRiceTypes, "C"+fmt.Sprint(row), core.FormatMoney(rt.PricePerKg))
	}

	if _, err := f.NewSheet(sheetTransactions); err != nil {
		return "", fmt.Errorf("create transactions sheet: %w", err)
	}
	writeHeader(f, sheetTransactions, []string{"ID", "Contributor", "Zakat Kind", "Rice Type", "Quantity (kg)", "Total Price", "Date"})
	for i, v := range views {
		row := i + 2
		f.SetCellValue(sheetTransactions, "A"+fmt.Sprint(row), v.ID)
		f.SetCellValue(sheetTransactions, "B"+fmt.Sprint(row), v.ContributorName)
		f.SetCellValue(sheetTransactions, "C"+fmt.Sprint(row), v.ContributionKind)
		f.SetCellValue(sheetTransactions, "D"+fmt.Sprint(row), v.RiceTypeName)
		f.SetCellValue(sheetTransactions, "E"+fmt.Sprint(row), v.QuantityKg.String())
		f.SetCellValue(sheetTransactions, "F"+fmt.Sprint(row), core.FormatMoney(v.TotalPrice))
		f.SetCellValue(sheetTransactions, "G"+fmt.Sprint(row), v.Date.Format(core.DateLayout))
	}

	path := filepath.Join(e.dir, e.filename())
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}

	slog.InfoContext(ctx, "Exported data to workbook",
		applog.FieldFile, path,
		applog.FieldRows, len(contributions))
	return path, nil
}

// filename carries the export date in compact form.
func (e *XLSXExporter) filename() string {
	return fmt.Sprintf("data_zakat_%s.xlsx", e.now().Format("20060102"))
}

func writeHeader(f *excelize.File, sheet string, header []string) {
	col := 'A'
	for _, h := range header {
		f.SetCellValue(sheet, string(col)+"1", h)
		col++
	}
}
