package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"vaccination-card/internal/adapters/storage/postgres"
	"vaccination-card/internal/domain/persons"
	"vaccination-card/internal/domain/vaccination"
	"vaccination-card/internal/domain/vaccines"
	"vaccination-card/internal/platform/web"
)

var cardCategory string

var cardCmd = &cobra.Command{
	Use:   "card <personID|cpf>",
	Short: "Muestra la cartilla de una persona",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var category *vaccines.Category
		if cardCategory != "" {
			c, err := vaccines.ParseCategory(cardCategory)
			if err != nil {
				return err
			}
			category = &c
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		records := postgres.NewRecordsRepo(db)
		personsSvc := persons.NewService(postgres.NewPersonsRepo(db))
		vaccinesSvc := vaccines.NewService(postgres.NewVaccinesRepo(db))
		svc := vaccination.NewService(records, personsSvc, vaccinesSvc, postgres.NewTxRunner(db))

		ctx := cmd.Context()
		personID := args[0]
		if p, err := personsSvc.SearchByCPF(ctx, personID); err == nil {
			personID = p.ID
		}

		card, err := svc.GetCard(ctx, personID, category)
		if err != nil {
			return err
		}
		return printCard(cmd.OutOrStdout(), card)
	},
}

func init() {
	cardCmd.Flags().StringVar(&cardCategory, "category", "", "NATIONAL_CARD u OTHER")
	rootCmd.AddCommand(cardCmd)
}

func printCard(out io.Writer, card vaccination.Card) error {
	p := card.Person
	fmt.Fprintf(out, "%s  cpf=%s  nacimiento=%s  sexo=%s\n\n",
		p.Name, p.CPF, p.BirthDate.Format(web.DateLayout), p.Sex)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	header := []string{"VACCINE"}
	for _, d := range vaccines.AllDoseKinds() {
		header = append(header, d.Label())
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, row := range card.Vaccines {
		cols := []string{row.VaccineName}
		for _, d := range row.Doses {
			switch d.Status {
			case vaccination.StatusTaken:
				cols = append(cols, d.ApplicationDate.Format(web.DateLayout))
			case vaccination.StatusMissing:
				cols = append(cols, "-")
			default:
				cols = append(cols, "")
			}
		}
		fmt.Fprintln(tw, strings.Join(cols, "\t"))
	}
	return tw.Flush()
}
