package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"zakat/internal/core"
	"zakat/internal/export"
	"zakat/internal/services"
)

// command is an enumerated menu choice. Dispatch goes through a lookup
// table instead of branching on raw input strings.
type command string

const (
	cmdLedger       command = "1"
	cmdCatalog      command = "2"
	cmdTransactions command = "3"
	cmdExport       command = "4"
	cmdQuit         command = "5"
)

// Menu is the interactive operator loop: one command at a time, errors are
// rendered and the loop continues.
type Menu struct {
	p        *Prompter
	out      io.Writer
	ledger   *services.Ledger
	catalog  *services.Catalog
	recorder *services.Recorder
	exporter export.Exporter

	handlers map[command]func(context.Context) error
}

func NewMenu(in io.Reader, out io.Writer, ledger *services.Ledger, catalog *services.Catalog,
	recorder *services.Recorder, exporter export.Exporter) *Menu {
	m := &Menu{
		p:        NewPrompter(in, out),
		out:      out,
		ledger:   ledger,
		catalog:  catalog,
		recorder: recorder,
		exporter: exporter,
	}
	m.handlers = map[command]func(context.Context) error{
		cmdLedger:       m.ledgerMenu,
		cmdCatalog:      m.catalogMenu,
		cmdTransactions: m.transactionMenu,
		cmdExport:       m.exportData,
	}
	return m
}

// Run processes commands until the operator quits or input ends.
func (m *Menu) Run(ctx context.Context) error {
	for {
		fmt.Fprintln(m.out, "\n=== Zakat Management ===")
		fmt.Fprintln(m.out, "1. Manage contributions")
		fmt.Fprintln(m.out, "2. Manage rice catalog")
		fmt.Fprintln(m.out, "3. Manage transactions")
		fmt.Fprintln(m.out, "4. Export data")
		fmt.Fprintln(m.out, "5. Quit")

		choice, err := m.p.Line("Choose an option (1-5): ")
		if err != nil {
			return ignoreEOF(err)
		}
		if command(choice) == cmdQuit {
			fmt.Fprintln(m.out, "Goodbye.")
			return nil
		}
		handler, ok := m.handlers[command(choice)]
		if !ok {
			fmt.Fprintln(m.out, "Invalid choice.")
			continue
		}
		if err := handler(ctx); err != nil {
			return ignoreEOF(err)
		}
	}
}

// Running out of input (piped sessions, Ctrl-D) ends the loop cleanly.
func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (m *Menu) ledgerMenu(ctx context.Context) error {
	for {
		fmt.Fprintln(m.out, "\nContribution menu:")
		fmt.Fprintln(m.out, "1. Add contribution")
		fmt.Fprintln(m.out, "2. Edit contribution")
		fmt.Fprintln(m.out, "3. Delete contribution")
		fmt.Fprintln(m.out, "4. List contributions")
		fmt.Fprintln(m.out, "5. Back")

		choice, err := m.p.Line("Choose an option (1-5): ")
		if err != nil {
			return err
		}
		switch choice {
		case "1":
			err = m.addContribution(ctx)
		case "2":
			err = m.editContribution(ctx)
		case "3":
			err = m.deleteContribution(ctx)
		case "4":
			err = m.listContributions(ctx)
		case "5":
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice.")
		}
		if err != nil {
			return err
		}
	}
}

func (m *Menu) addContribution(ctx context.Context) error {
	c, err := m.readContribution()
	if err != nil {
		return err
	}
	id, err := m.ledger.Add(ctx, c)
	if err != nil {
		m.renderError(err)
		return nil
	}
	fmt.Fprintf(m.out, "Contribution saved with id %d.\n", id)
	return nil
}

func (m *Menu) editContribution(ctx context.Context) error {
	id, err := m.p.ID("Contribution id to edit: ")
	if err != nil {
		return err
	}
	c, err := m.readContribution()
	if err != nil {
		return err
	}
	c.ID = id
	if err := m.ledger.Update(ctx, c); err != nil {
		m.renderError(err)
		return nil
	}
	fmt.Fprintln(m.out, "Contribution updated.")
	return nil
}

func (m *Menu) deleteContribution(ctx context.Context) error {
	id, err := m.p.ID("Contribution id to delete: ")
	if err != nil {
		return err
	}
	ok, err := m.p.Confirm(fmt.Sprintf("Delete contribution %d? (y/n): ", id))
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := m.ledger.Remove(ctx, id); err != nil {
		m.renderError(err)
		return nil
	}
	fmt.Fprintln(m.out, "Contribution deleted.")
	return nil
}

func (m *Menu) listContributions(ctx context.Context) error {
	contributions, err := m.ledger.List(ctx)
	if err != nil {
		m.renderError(err)
		return nil
	}
	if len(contributions) == 0 {
		fmt.Fprintln(m.out, "No contributions recorded.")
		return nil
	}
	fmt.Fprintln(m.out, "\nContributions:")
	for _, c := range contributions {
		fmt.Fprintf(m.out, "ID: %d, Name: %s, Kind: %s, Amount: %s, Date: %s\n",
			c.ID, c.Name, c.Kind, core.FormatMoney(c.Amount), c.Date.Format(core.DateLayout))
	}
	return nil
}

func (m *Menu) readContribution() (core.Contribution, error) {
	name, err := m.p.Line("Contributor name: ")
	if err != nil {
		return core.Contribution{}, err
	}
	kind, err := m.p.Line("Zakat kind: ")
	if err != nil {
		return core.Contribution{}, err
	}
	amount, err := m.p.Decimal("Amount: ", core.ParseAmount)
	if err != nil {
		return core.Contribution{}, err
	}
	date, err := m.p.Date("Date (YYYY-MM-DD): ")
	if err != nil {
		return core.Contribution{}, err
	}
	return core.Contribution{Name: name, Kind: kind, Amount: amount, Date: date}, nil
}

func (m *Menu) catalogMenu(ctx context.Context) error {
	for {
		fmt.Fprintln(m.out, "\nRice catalog menu:")
		fmt.Fprintln(m.out, "1. Add rice type")
		fmt.Fprintln(m.out, "2. List rice types")
		fmt.Fprintln(m.out, "3. Back")

		choice, err := m.p.Line("Choose an option (1-3): ")
		if err != nil {
			return err
		}
		switch choice {
		case "1":
			err = m.addRiceType(ctx)
		case "2":
			err = m.listRiceTypes(ctx)
		case "3":
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice.")
		}
		if err != nil {
			return err
		}
	}
}

func (m *Menu) addRiceType(ctx context.Context) error {
	name, err := m.p.Line("Rice type name: ")
	if err != nil {
		return err
	}
	price, err := m.p.Decimal("Price per kg: ", core.ParsePrice)
	if err != nil {
		return err
	}
	id, err := m.catalog.Add(ctx, core.RiceType{Name: name, PricePerKg: price})
	if err != nil {
		m.renderError(err)
		return nil
	}
	fmt.Fprintf(m.out, "Rice type saved with id %d.\n", id)
	return nil
}

func (m *Menu) listRiceTypes(ctx context.Context) error {
	riceTypes, err := m.catalog.List(ctx)
	if err != nil {
		m.renderError(err)
		return nil
	}
	if len(riceTypes) == 0 {
		fmt.Fprintln(m.out, "No rice types in the catalog.")
		return nil
	}
	fmt.Fprintln(m.out, "\nRice catalog:")
	for _, rt := range riceTypes {
		fmt.Fprintf(m.out, "ID: %d, Name: %s, Price per kg: %s\n",
			rt.ID, rt.Name, core.FormatMoney(rt.PricePerKg))
	}
	return nil
}

func (m *Menu) transactionMenu(ctx context.Context) error {
	for {
		fmt.Fprintln(m.out, "\nTransaction menu:")
		fmt.Fprintln(m.out, "1. Record transaction")
		fmt.Fprintln(m.out, "2. List transactions")
		fmt.Fprintln(m.out, "3. Back")

		choice, err := m.p.Line("Choose an option (1-3): ")
		if err != nil {
			return err
		}
		switch choice {
		case "1":
			err = m.recordTransaction(ctx)
		case "2":
			err = m.listTransactions(ctx)
		case "3":
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice.")
		}
		if err != nil {
			return err
		}
	}
}

func (m *Menu) recordTransaction(ctx context.Context) error {
	contributionID, err := m.p.ID("Contribution id: ")
	if err != nil {
		return err
	}
	// show the catalog so the operator can pick a rice type by id
	if err := m.listRiceTypes(ctx); err != nil {
		return err
	}
	riceTypeID, err := m.p.ID("Rice type id: ")
	if err != nil {
		return err
	}
	quantity, err := m.p.Decimal("Rice quantity (kg): ", core.ParseQuantity)
	if err != nil {
		return err
	}
	date, err := m.p.Date("Date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}

	id, err := m.recorder.RecordTransaction(ctx, core.TransactionInput{
		ContributionID: contributionID,
		RiceTypeID:     riceTypeID,
		QuantityKg:     quantity,
		Date:           date,
	})
	if err != nil {
		m.renderError(err)
		return nil
	}
	fmt.Fprintf(m.out, "Transaction recorded with id %d.\n", id)
	return nil
}

func (m *Menu) listTransactions(ctx context.Context) error {
	views, err := m.recorder.ListTransactions(ctx)
	if err != nil {
		m.renderError(err)
		return nil
	}
	if len(views) == 0 {
		fmt.Fprintln(m.out, "No transactions recorded.")
		return nil
	}
	fmt.Fprintln(m.out, "\nTransactions:")
	for _, v := range views {
		fmt.Fprintf(m.out, "ID: %d, Name: %s, Kind: %s\n", v.ID, v.ContributorName, v.ContributionKind)
		fmt.Fprintf(m.out, "Rice: %s, Quantity: %skg\n", v.RiceTypeName, v.QuantityKg)
		fmt.Fprintf(m.out, "Total price: %s, Date: %s\n\n",
			core.FormatMoney(v.TotalPrice), v.Date.Format(core.DateLayout))
	}
	return nil
}

func (m *Menu) exportData(ctx context.Context) error {
	ok, err := m.p.Confirm("Export zakat data? (y/n): ")
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	ref, err := m.exporter.Export(ctx)
	if err != nil {
		m.renderError(err)
		return nil
	}
	fmt.Fprintf(m.out, "Data exported to %s.\n", ref)
	return nil
}

// renderError prints a friendly message for the typed domain errors and a
// generic one for store failures, then lets the loop continue.
func (m *Menu) renderError(err error) {
	switch {
	case errors.Is(err, core.ErrContributionNotFound):
		fmt.Fprintln(m.out, "Error: contribution id not found.")
	case errors.Is(err, core.ErrRiceTypeNotFound):
		fmt.Fprintln(m.out, "Error: rice type id not found.")
	case errors.Is(err, core.ErrInvalidQuantity):
		fmt.Fprintln(m.out, "Error: quantity must be greater than zero.")
	default:
		fmt.Fprintf(m.out, "Error: %v\n", err)
	}
}
