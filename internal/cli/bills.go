package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"billsplit/internal/billview"
	"billsplit/internal/models"
)

var billsCmd = &cobra.Command{
	Use:   "bills",
	Short: "Manage shared bills",
}

var billsListFlags struct {
	Filter string
}

var billsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your bills",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		filter, err := billview.ParseFilter(billsListFlags.Filter)
		if err != nil {
			return err
		}

		session := a.sessions.Current()
		if err := a.coord.RefreshBills(cmd.Context(), session); err != nil {
			return err
		}

		bills := filter.Apply(a.coord.Bills(), session.Username)
		if len(bills) == 0 {
			fmt.Println("No bills")
			return nil
		}
		for _, b := range bills {
			printBill(b, session.Username)
		}
		return nil
	},
}

func printBill(b *models.Bill, caller string) {
	fmt.Printf("%s  %s  %.2f", b.ID, b.Date, b.EffectiveTotal())
	if b.Discount {
		fmt.Printf(" (25%% off %.2f)", b.Amount)
	}
	if b.Description != "" {
		fmt.Printf("  %s", b.Description)
	}
	fmt.Printf("  by %s", b.Creator)
	if status, ok := billview.CreatorStatus(b, caller); ok {
		fmt.Printf("  [%s]", status)
	}
	fmt.Printf("  due %s\n", time.Unix(b.DueAt, 0).Format("2006-01-02 15:04"))

	for _, s := range b.Shares {
		mark := " "
		if s.IsPaid {
			mark = "x"
		}
		fmt.Printf("    [%s] %-16s %.2f\n", mark, s.Username, s.Amount)
	}
}

var billsCreateFlags struct {
	Amount       float64
	Date         string
	Description  string
	Participants []string
	Discount     bool
}

var billsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a bill split among participants",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		session := a.sessions.Current()
		date := billsCreateFlags.Date
		if date == "" {
			date = time.Now().Format("2006-01-02")
		}

		participants := billsCreateFlags.Participants
		if len(participants) == 0 {
			// Default to everyone, mirroring the pre-selected roster view.
			options, err := a.roster.ParticipantOptions(cmd.Context(), session)
			if err != nil {
				return err
			}
			for _, o := range options {
				participants = append(participants, o.Username)
			}
		}

		bill, err := a.coord.CreateBill(cmd.Context(), session, billsCreateFlags.Amount, date, billsCreateFlags.Description, participants, billsCreateFlags.Discount)
		if err != nil {
			return err
		}

		fmt.Printf("Created bill %s, %.2f split %d ways\n", bill.ID, bill.EffectiveTotal(), len(bill.Shares))
		return nil
	},
}

var billsPayCmd = &cobra.Command{
	Use:   "pay <bill-id>",
	Short: "Mark your own share as paid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		session := a.sessions.Current()
		bill, err := a.coord.MarkPaid(cmd.Context(), session, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Paid your share of %s (%d/%d settled)\n", bill.ID, bill.PaidCount(), len(bill.Shares))
		return nil
	},
}

var billsDelCmd = &cobra.Command{
	Use:   "del <bill-id>",
	Short: "Delete a bill (admin only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		if err := a.coord.DeleteBill(cmd.Context(), a.sessions.Current(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted bill %s\n", args[0])
		return nil
	},
}

func init() {
	billsListCmd.Flags().StringVarP(&billsListFlags.Filter, "filter", "f", string(billview.FilterAll),
		"one of: "+strings.Join([]string{string(billview.FilterAll), string(billview.FilterUnpaidMe), string(billview.FilterMyBills), string(billview.FilterUnpaidAny)}, ", "))

	billsCreateCmd.Flags().Float64VarP(&billsCreateFlags.Amount, "amount", "a", 0, "full bill amount")
	billsCreateCmd.Flags().StringVarP(&billsCreateFlags.Date, "date", "d", "", "expense date (YYYY-MM-DD, default today)")
	billsCreateCmd.Flags().StringVarP(&billsCreateFlags.Description, "description", "m", "", "free-form note")
	billsCreateCmd.Flags().StringSliceVarP(&billsCreateFlags.Participants, "participants", "p", nil, "participants (default: everyone)")
	billsCreateCmd.Flags().BoolVar(&billsCreateFlags.Discount, "discount", false, "settle at 75% of the amount")
	_ = billsCreateCmd.MarkFlagRequired("amount")

	billsCmd.AddCommand(billsListCmd, billsCreateCmd, billsPayCmd, billsDelCmd)
	rootCmd.AddCommand(billsCmd)
}
