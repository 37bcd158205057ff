package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fincore-cli",
		Short: "Fincore CLI tool",
		Long:  `A command line interface for interacting with the Fincore ledger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Fincore API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(accountCommands())
	rootCmd.AddCommand(ledgerCommands())
	rootCmd.AddCommand(conversionCommands())
	rootCmd.AddCommand(analyticsCommands())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func accountCommands() *cobra.Command {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	var userID, currency string
	openCmd := &cobra.Command{
		Use:   "open",
		Short: "Open a new account",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/accounts", map[string]any{
				"user_id":          userID,
				"default_currency": currency,
			})
		},
	}
	openCmd.Flags().StringVar(&userID, "user", "", "User ID")
	openCmd.Flags().StringVar(&currency, "currency", "USD", "Default currency")
	openCmd.MarkFlagRequired("user")

	getCmd := &cobra.Command{
		Use:   "get [account-id]",
		Short: "Get an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/accounts/"+args[0], nil)
		},
	}

	var status string
	statusCmd := &cobra.Command{
		Use:   "status [account-id]",
		Short: "Update account status",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPut, "/api/v1/accounts/"+args[0]+"/status", map[string]any{
				"status": status,
			})
		},
	}
	statusCmd.Flags().StringVar(&status, "status", "", "New status (active, suspended, frozen, closed)")
	statusCmd.MarkFlagRequired("status")

	var addCurrency string
	addCurrencyCmd := &cobra.Command{
		Use:   "add-currency [account-id]",
		Short: "Add a currency to an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/accounts/"+args[0]+"/currencies", map[string]any{
				"currency": addCurrency,
			})
		},
	}
	addCurrencyCmd.Flags().StringVar(&addCurrency, "currency", "", "Currency code")
	addCurrencyCmd.MarkFlagRequired("currency")

	accountCmd.AddCommand(openCmd, getCmd, statusCmd, addCurrencyCmd)
	return accountCmd
}

func ledgerCommands() *cobra.Command {
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	var amount, currency, description string
	depositCmd := &cobra.Command{
		Use:   "deposit [account-id]",
		Short: "Deposit funds",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/accounts/"+args[0]+"/deposit", map[string]any{
				"amount":      amount,
				"currency":    currency,
				"description": description,
			})
		},
	}
	addAmountFlags(depositCmd, &amount, &currency, &description)

	withdrawCmd := &cobra.Command{
		Use:   "withdraw [account-id]",
		Short: "Withdraw funds",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/accounts/"+args[0]+"/withdraw", map[string]any{
				"amount":      amount,
				"currency":    currency,
				"description": description,
			})
		},
	}
	addAmountFlags(withdrawCmd, &amount, &currency, &description)

	var toAccount string
	transferCmd := &cobra.Command{
		Use:   "transfer [from-account-id]",
		Short: "Transfer funds between accounts",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/transfers", map[string]any{
				"from_account_id": args[0],
				"to_account_id":   toAccount,
				"amount":          amount,
				"currency":        currency,
				"description":     description,
			})
		},
	}
	addAmountFlags(transferCmd, &amount, &currency, &description)
	transferCmd.Flags().StringVar(&toAccount, "to", "", "Destination account ID")
	transferCmd.MarkFlagRequired("to")

	var reason string
	reverseCmd := &cobra.Command{
		Use:   "reverse [transaction-id]",
		Short: "Reverse a completed transaction",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/transactions/"+args[0]+"/reverse", map[string]any{
				"reason": reason,
			})
		},
	}
	reverseCmd.Flags().StringVar(&reason, "reason", "", "Reversal reason")
	reverseCmd.MarkFlagRequired("reason")

	txnCmd := &cobra.Command{
		Use:   "txn [transaction-id]",
		Short: "Get a transaction",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/transactions/"+args[0], nil)
		},
	}

	ledgerCmd.AddCommand(depositCmd, withdrawCmd, transferCmd, reverseCmd, txnCmd)
	return ledgerCmd
}

func conversionCommands() *cobra.Command {
	convCmd := &cobra.Command{
		Use:   "convert",
		Short: "Conversion operations",
	}

	var from, to, amount string
	currencyCmd := &cobra.Command{
		Use:   "currency [account-id]",
		Short: "Convert between currencies on an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/accounts/"+args[0]+"/conversions", map[string]any{
				"from_currency": from,
				"to_currency":   to,
				"from_amount":   amount,
			})
		},
	}
	currencyCmd.Flags().StringVar(&from, "from", "", "Source currency")
	currencyCmd.Flags().StringVar(&to, "to", "", "Target currency")
	currencyCmd.Flags().StringVar(&amount, "amount", "", "Amount in source currency")
	currencyCmd.MarkFlagRequired("from")
	currencyCmd.MarkFlagRequired("to")
	currencyCmd.MarkFlagRequired("amount")

	var assetID, tokenType, tokenAmount string
	tokenCmd := &cobra.Command{
		Use:   "token [account-id]",
		Short: "Convert an asset token position to fiat",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/accounts/"+args[0]+"/conversions/asset", map[string]any{
				"asset_id":     assetID,
				"token_type":   tokenType,
				"token_amount": tokenAmount,
			})
		},
	}
	tokenCmd.Flags().StringVar(&assetID, "asset", "", "Asset ID")
	tokenCmd.Flags().StringVar(&tokenType, "type", "", "Token type")
	tokenCmd.Flags().StringVar(&tokenAmount, "amount", "", "Token amount")
	tokenCmd.MarkFlagRequired("asset")
	tokenCmd.MarkFlagRequired("type")
	tokenCmd.MarkFlagRequired("amount")

	var reason string
	reverseCmd := &cobra.Command{
		Use:   "reverse [conversion-id]",
		Short: "Reverse a completed conversion",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/conversions/"+args[0]+"/reverse", map[string]any{
				"reason": reason,
			})
		},
	}
	reverseCmd.Flags().StringVar(&reason, "reason", "", "Reversal reason")
	reverseCmd.MarkFlagRequired("reason")

	convCmd.AddCommand(currencyCmd, tokenCmd, reverseCmd)
	return convCmd
}

func analyticsCommands() *cobra.Command {
	analyticsCmd := &cobra.Command{
		Use:   "analytics",
		Short: "Analytics queries",
	}

	byTypeCmd := &cobra.Command{
		Use:   "by-type [account-id]",
		Short: "Transaction totals grouped by type",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/accounts/"+args[0]+"/analytics/transactions/by-type", nil)
		},
	}

	byPairCmd := &cobra.Command{
		Use:   "pairs",
		Short: "Conversion totals grouped by currency pair",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/analytics/conversions/by-pair", nil)
		},
	}

	totalsCmd := &cobra.Command{
		Use:   "totals",
		Short: "Platform-wide balance totals per currency",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/analytics/balances/totals", nil)
		},
	}

	analyticsCmd.AddCommand(byTypeCmd, byPairCmd, totalsCmd)
	return analyticsCmd
}

func addAmountFlags(cmd *cobra.Command, amount, currency, description *string) {
	cmd.Flags().StringVar(amount, "amount", "", "Amount")
	cmd.Flags().StringVar(currency, "currency", "", "Currency code")
	cmd.Flags().StringVar(description, "description", "", "Description")
	cmd.MarkFlagRequired("amount")
	cmd.MarkFlagRequired("currency")
}

func doRequest(method, path string, payload map[string]any) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			fmt.Printf("Failed to encode request: %v\n", err)
			os.Exit(1)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(respBody))
		os.Exit(1)
	}

	fmt.Println(prettyJSON(respBody))
}

func prettyJSON(data []byte) string {
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return string(data)
	}
	return out.String()
}
