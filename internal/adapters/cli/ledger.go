package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	daemon "github.com/andrescamacho/spacemining-go/internal/adapters/grpc"
	"github.com/andrescamacho/spacemining-go/internal/application/ledger/queries"
)

// NewLedgerCommand creates the ledger command with subcommands
func NewLedgerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Financial ledger operations",
		Long: `View and analyze the credit journal of a game session.

Every sale, upgrade and ship purchase is journaled with the balance before
and after. Commands default to the daemon's active session.

Examples:
  spacemining ledger list --limit 10
  spacemining ledger list --category TRADING_REVENUE
  spacemining ledger report --group-by turn
  spacemining ledger export --output ledger.csv`,
	}

	cmd.AddCommand(newLedgerListCommand())
	cmd.AddCommand(newLedgerReportCommand())
	cmd.AddCommand(newLedgerExportCommand())

	return cmd
}

// ledgerFilter holds the list/export filter flags
type ledgerFilter struct {
	sessionID string
	startDate string
	endDate   string
	category  string
	txType    string
	limit     int
	offset    int
	orderBy   string
}

func (f *ledgerFilter) bind(cmd *cobra.Command, defaultLimit int) {
	cmd.Flags().StringVar(&f.sessionID, "session", "", "Session ID (defaults to the active session)")
	cmd.Flags().StringVar(&f.startDate, "start-date", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.endDate, "end-date", "", "End date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&f.category, "category", "", "Filter by category")
	cmd.Flags().StringVar(&f.txType, "type", "", "Filter by transaction type")
	cmd.Flags().IntVar(&f.limit, "limit", defaultLimit, "Maximum number of transactions to return")
	cmd.Flags().IntVar(&f.offset, "offset", 0, "Number of transactions to skip")
	cmd.Flags().StringVar(&f.orderBy, "order-by", "timestamp DESC", "Sort order (timestamp ASC|timestamp DESC)")
}

func (f *ledgerFilter) query() (*queries.GetTransactionsQuery, error) {
	query := &queries.GetTransactionsQuery{
		SessionID: f.sessionID,
		Limit:     f.limit,
		Offset:    f.offset,
		OrderBy:   f.orderBy,
	}

	if f.startDate != "" {
		start, err := time.Parse("2006-01-02", f.startDate)
		if err != nil {
			return nil, fmt.Errorf("invalid start date format (use YYYY-MM-DD): %w", err)
		}
		query.StartDate = &start
	}
	if f.endDate != "" {
		end, err := time.Parse("2006-01-02", f.endDate)
		if err != nil {
			return nil, fmt.Errorf("invalid end date format (use YYYY-MM-DD): %w", err)
		}
		// Include the whole end day
		end = end.Add(24*time.Hour - time.Nanosecond)
		query.EndDate = &end
	}
	if f.category != "" {
		category := f.category
		query.Category = &category
	}
	if f.txType != "" {
		txType := f.txType
		query.TransactionType = &txType
	}

	return query, nil
}

func newLedgerListCommand() *cobra.Command {
	var filter ledgerFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Long: `List journaled transactions with optional filtering.

Categories:
  TRADING_REVENUE   - Income from selling cargo
  SHIP_UPGRADES     - Expenses from upgrades
  SHIP_INVESTMENTS  - Expenses from purchasing ships

Transaction Types:
  SELL_CARGO        - Cargo sale
  PURCHASE_UPGRADE  - Upgrade purchase
  PURCHASE_SHIP     - Ship purchase`,
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := filter.query()
			if err != nil {
				return err
			}

			var response queries.GetTransactionsResponse
			if err := call(cmd, daemon.MethodListTransactions, query, &response); err != nil {
				return err
			}

			render(cmd, func(w io.Writer) {
				displayTransactionList(w, &response)
			})
			return nil
		},
	}

	filter.bind(cmd, 50)

	return cmd
}

func newLedgerReportCommand() *cobra.Command {
	var (
		sessionID string
		groupBy   string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Profit & loss and cash flow report",
		Long: `Summarize the session journal: revenue and expenses by category, net
profit, sale statistics and cash flow grouped by category or turn.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var profitLoss queries.GetProfitLossResponse
			if err := call(cmd, daemon.MethodGetProfitLoss, &queries.GetProfitLossQuery{SessionID: sessionID}, &profitLoss); err != nil {
				return err
			}

			var cashFlow queries.GetCashFlowResponse
			request := &queries.GetCashFlowQuery{SessionID: sessionID, GroupBy: groupBy}
			if err := call(cmd, daemon.MethodGetCashFlow, request, &cashFlow); err != nil {
				return err
			}

			render(cmd, func(w io.Writer) {
				displayProfitLoss(w, &profitLoss)
				displayCashFlow(w, &cashFlow)
			})
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session ID (defaults to the active session)")
	cmd.Flags().StringVar(&groupBy, "group-by", queries.GroupByCategory, "Cash flow grouping (category|turn)")

	return cmd
}

func newLedgerExportCommand() *cobra.Command {
	var (
		filter ledgerFilter
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transactions as CSV",
		Long: `Write the filtered journal as CSV to a file or, without --output, to stdout.

Example:
  spacemining ledger export --order-by "timestamp ASC" --output ledger.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := filter.query()
			if err != nil {
				return err
			}

			var response queries.GetTransactionsResponse
			err = withClient(func(ctx context.Context, client DaemonClient) error {
				return client.Call(ctx, daemon.MethodListTransactions, query, &response)
			})
			if err != nil {
				return err
			}

			if output == "" {
				csv, err := gocsv.MarshalString(&response.Transactions)
				if err != nil {
					return fmt.Errorf("failed to encode transactions: %w", err)
				}
				_, err = io.WriteString(cmd.OutOrStdout(), csv)
				return err
			}

			file, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			defer file.Close()

			if err := gocsv.MarshalFile(&response.Transactions, file); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d transactions to %s\n", len(response.Transactions), output)
			return nil
		},
	}

	filter.bind(cmd, 0)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (defaults to stdout)")

	return cmd
}

// displayTransactionList formats and displays transaction list
func displayTransactionList(w io.Writer, response *queries.GetTransactionsResponse) {
	if len(response.Transactions) == 0 {
		fmt.Fprintln(w, "No transactions found")
		return
	}

	fmt.Fprintf(w, "\nTRANSACTIONS (Showing %d of %d total)\n", len(response.Transactions), response.Total)
	fmt.Fprintln(w, rule)

	t := newTable(w)
	fmt.Fprintln(t, "Timestamp\tTurn\tType\tCategory\tAmount\tBalance\tDescription")
	fmt.Fprintln(t, "─────────\t────\t────\t────────\t──────\t───────\t───────────")

	for _, tx := range response.Transactions {
		fmt.Fprintf(t, "%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			tx.Timestamp.Format("2006-01-02 15:04:05"),
			tx.Turn,
			tx.Type,
			tx.Category,
			formatAmount(tx.Amount),
			formatCredits(tx.BalanceAfter),
			tx.Description,
		)
	}

	t.Flush()
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total: %d transactions\n\n", response.Total)
}

// displayProfitLoss formats and displays P&L report
func displayProfitLoss(w io.Writer, response *queries.GetProfitLossResponse) {
	fmt.Fprintf(w, "\nPROFIT & LOSS STATEMENT\n")
	fmt.Fprintf(w, "Session: %s\n", response.SessionID)
	fmt.Fprintln(w, rule)

	fmt.Fprintln(w, "\nREVENUE")
	for _, category := range sortedKeys(response.RevenueBreakdown) {
		fmt.Fprintf(w, "  %-25s %s\n", category+":", formatCredits(response.RevenueBreakdown[category]))
	}
	fmt.Fprintln(w, "                            ─────────────")
	fmt.Fprintf(w, "  %-25s %s\n", "Total Revenue:", formatCredits(response.TotalRevenue))

	fmt.Fprintln(w, "\nEXPENSES")
	for _, category := range sortedKeys(response.ExpenseBreakdown) {
		fmt.Fprintf(w, "  %-25s %s\n", category+":", formatCredits(-response.ExpenseBreakdown[category]))
	}
	fmt.Fprintln(w, "                            ─────────────")
	fmt.Fprintf(w, "  %-25s %s\n", "Total Expenses:", formatCredits(-response.TotalExpenses))

	fmt.Fprintln(w, "\n"+rule)
	fmt.Fprintf(w, "NET PROFIT:                 %s\n", formatAmount(response.NetProfit))
	fmt.Fprintln(w, rule)

	if response.Sales.Count > 0 {
		fmt.Fprintf(w, "Sales: %d  mean %s  std dev %s  largest %s\n",
			response.Sales.Count,
			formatCredits(response.Sales.Mean),
			formatCredits(response.Sales.StdDev),
			formatCredits(response.Sales.Largest),
		)
	}
}

// displayCashFlow formats and displays cash flow report
func displayCashFlow(w io.Writer, response *queries.GetCashFlowResponse) {
	fmt.Fprintf(w, "\nCASH FLOW STATEMENT (By %s)\n", response.GroupBy)
	fmt.Fprintln(w, rule)

	t := newTable(w)
	fmt.Fprintln(t, "Group\tInflow\tOutflow\tNet Flow\tTransactions")
	fmt.Fprintln(t, "─────\t──────\t───────\t────────\t────────────")

	var totalInflow, totalOutflow, totalNetFlow float64
	totalTransactions := 0

	for _, group := range response.Groups {
		fmt.Fprintf(t, "%s\t%s\t%s\t%s\t%d\n",
			group.Key,
			formatCredits(group.TotalInflow),
			formatCredits(-group.TotalOutflow),
			formatAmount(group.NetFlow),
			group.Transactions,
		)
		totalInflow += group.TotalInflow
		totalOutflow += group.TotalOutflow
		totalNetFlow += group.NetFlow
		totalTransactions += group.Transactions
	}

	fmt.Fprintln(t, "─────\t──────\t───────\t────────\t────────────")
	fmt.Fprintf(t, "TOTAL\t%s\t%s\t%s\t%d\n",
		formatCredits(totalInflow),
		formatCredits(-totalOutflow),
		formatAmount(totalNetFlow),
		totalTransactions,
	)

	t.Flush()
	fmt.Fprintln(w, rule)
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
