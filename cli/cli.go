package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go-bank-simulator/model"
	"go-bank-simulator/service"

	"github.com/shopspring/decimal"
)

// CLI drives the interactive menu. It translates console input into service
// calls and maps service errors to short messages; a per-operation error
// never terminates the loop.
type CLI struct {
	in        *bufio.Scanner
	out       io.Writer
	accounts  *service.AccountService
	processor *service.TransactionService
	report    *service.ReportService
}

func New(in io.Reader, out io.Writer, accounts *service.AccountService, processor *service.TransactionService, report *service.ReportService) *CLI {
	return &CLI{
		in:        bufio.NewScanner(in),
		out:       out,
		accounts:  accounts,
		processor: processor,
		report:    report,
	}
}

// Run shows the menu until the user exits or input ends.
func (c *CLI) Run(ctx context.Context) {
	fmt.Fprintln(c.out, "Welcome to Banking Simulator")

	for {
		fmt.Fprintln(c.out, "\n1. Create Account")
		fmt.Fprintln(c.out, "2. Deposit")
		fmt.Fprintln(c.out, "3. Withdraw")
		fmt.Fprintln(c.out, "4. Transfer")
		fmt.Fprintln(c.out, "5. Show All Accounts")
		fmt.Fprintln(c.out, "6. Generate Report")
		fmt.Fprintln(c.out, "7. Exit")
		fmt.Fprintln(c.out, "8. Check Account Balance")

		choice, ok := c.promptInt("Enter choice: ")
		if !ok {
			return
		}

		switch choice {
		case 1:
			c.createAccount(ctx)
		case 2:
			c.deposit(ctx)
		case 3:
			c.withdraw(ctx)
		case 4:
			c.transfer(ctx)
		case 5:
			c.listAccounts(ctx)
		case 6:
			c.generateReport()
		case 7:
			fmt.Fprintln(c.out, "Goodbye!")
			return
		case 8:
			c.checkBalance(ctx)
		default:
			fmt.Fprintln(c.out, "Invalid choice, please select 1-8.")
		}
	}
}

func (c *CLI) createAccount(ctx context.Context) {
	name, ok := c.promptLine("Owner name: ")
	if !ok {
		return
	}
	email, ok := c.promptLine("Email address: ")
	if !ok {
		return
	}
	dob, ok := c.promptDate("Date of Birth (YYYY-MM-DD): ")
	if !ok {
		return
	}
	location, ok := c.promptLine("Location: ")
	if !ok {
		return
	}
	initialBalance, ok := c.promptAmount("Initial balance: ")
	if !ok {
		return
	}

	account, err := c.accounts.CreateAccount(ctx, model.CreateAccountRequest{
		OwnerName:      name,
		Email:          email,
		DOB:            dob,
		Location:       location,
		InitialBalance: initialBalance.String(),
	})
	if err != nil {
		fmt.Fprintf(c.out, "Could not create account: %v\n", err)
		return
	}

	fmt.Fprintln(c.out, "Account created successfully!")
	fmt.Fprintf(c.out, "Your account ID is: %d\n", account.ID)
}

func (c *CLI) deposit(ctx context.Context) {
	accountID, ok := c.promptInt64("Account ID: ")
	if !ok {
		return
	}
	amount, ok := c.promptAmount("Deposit amount: ")
	if !ok {
		return
	}
	note, ok := c.promptLine("Note (optional): ")
	if !ok {
		return
	}

	if _, err := c.processor.Deposit(ctx, accountID, amount, note); err != nil {
		fmt.Fprintf(c.out, "Deposit failed: %v\n", err)
		return
	}

	account, err := c.accounts.GetAccount(ctx, accountID)
	if err != nil {
		return
	}
	fmt.Fprintln(c.out, "Deposit successful!")
	fmt.Fprintf(c.out, "Updated Balance: %s\n", account.Balance.StringFixed(2))
}

func (c *CLI) withdraw(ctx context.Context) {
	accountID, ok := c.promptInt64("Account ID: ")
	if !ok {
		return
	}
	amount, ok := c.promptAmount("Withdrawal amount: ")
	if !ok {
		return
	}
	note, ok := c.promptLine("Note (optional): ")
	if !ok {
		return
	}

	challenge, err := c.processor.BeginWithdrawal(ctx, accountID, amount, note)
	if err != nil {
		fmt.Fprintf(c.out, "Withdrawal failed: %v\n", err)
		return
	}

	code, ok := c.promptLine("Enter OTP sent to your email: ")
	if !ok {
		return
	}

	if _, err := c.processor.ConfirmWithdrawal(ctx, challenge, code); err != nil {
		if errors.Is(err, service.ErrOTPMismatch) {
			fmt.Fprintln(c.out, "Invalid OTP. Withdrawal cancelled.")
		} else {
			fmt.Fprintf(c.out, "Withdrawal failed: %v\n", err)
		}
		return
	}

	account, err := c.accounts.GetAccount(ctx, accountID)
	if err != nil {
		return
	}
	fmt.Fprintln(c.out, "Withdrawal successful!")
	fmt.Fprintf(c.out, "Remaining Balance: %s\n", account.Balance.StringFixed(2))
}

func (c *CLI) transfer(ctx context.Context) {
	fromID, ok := c.promptInt64("From account ID: ")
	if !ok {
		return
	}
	toID, ok := c.promptInt64("To account ID: ")
	if !ok {
		return
	}
	amount, ok := c.promptAmount("Transfer amount: ")
	if !ok {
		return
	}
	note, ok := c.promptLine("Note (optional): ")
	if !ok {
		return
	}

	if _, err := c.processor.Transfer(ctx, fromID, toID, amount, note); err != nil {
		fmt.Fprintf(c.out, "Transfer failed: %v\n", err)
		return
	}

	fmt.Fprintln(c.out, "Transfer successful!")
	fmt.Fprintf(c.out, "Amount: %s, From Account %d -> To Account %d\n", amount.StringFixed(2), fromID, toID)
}

func (c *CLI) listAccounts(ctx context.Context) {
	accounts, err := c.accounts.ListAccounts(ctx)
	if err != nil {
		fmt.Fprintf(c.out, "Could not list accounts: %v\n", err)
		return
	}
	if len(accounts) == 0 {
		fmt.Fprintln(c.out, "No accounts found.")
		return
	}

	fmt.Fprintln(c.out, "\nAll Accounts:")
	for _, acc := range accounts {
		fmt.Fprintf(c.out, "Account{ID=%d, Name=%q, Email=%q, DOB=%q, Location=%q, Balance=%s}\n",
			acc.ID, acc.OwnerName, acc.Email, acc.DOB, acc.Location, acc.Balance.StringFixed(2))
	}
}

func (c *CLI) generateReport() {
	if err := c.report.GenerateReport(c.out); err != nil {
		fmt.Fprintf(c.out, "Could not generate report: %v\n", err)
	}
}

func (c *CLI) checkBalance(ctx context.Context) {
	accountID, ok := c.promptInt64("Account ID: ")
	if !ok {
		return
	}

	account, err := c.accounts.GetAccount(ctx, accountID)
	if err != nil {
		fmt.Fprintf(c.out, "Could not fetch account: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "Current Balance for account %d: %s\n", account.ID, account.Balance.StringFixed(2))
}

// promptLine reads one trimmed line. ok is false when input ended.
func (c *CLI) promptLine(prompt string) (string, bool) {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

// promptInt retries until the user supplies a well-formed integer.
func (c *CLI) promptInt(prompt string) (int, bool) {
	for {
		line, ok := c.promptLine(prompt)
		if !ok {
			return 0, false
		}
		value, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(c.out, "Invalid number, please try again.")
			continue
		}
		return value, true
	}
}

// promptInt64 retries until the user supplies a well-formed account id.
func (c *CLI) promptInt64(prompt string) (int64, bool) {
	for {
		line, ok := c.promptLine(prompt)
		if !ok {
			return 0, false
		}
		value, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			fmt.Fprintln(c.out, "Invalid account ID, please try again.")
			continue
		}
		return value, true
	}
}

// promptAmount retries until the user supplies a well-formed decimal amount.
func (c *CLI) promptAmount(prompt string) (decimal.Decimal, bool) {
	for {
		line, ok := c.promptLine(prompt)
		if !ok {
			return decimal.Zero, false
		}
		value, err := decimal.NewFromString(line)
		if err != nil {
			fmt.Fprintln(c.out, "Invalid amount, please try again.")
			continue
		}
		return value, true
	}
}

// promptDate retries until the user supplies a valid YYYY-MM-DD date.
func (c *CLI) promptDate(prompt string) (string, bool) {
	for {
		line, ok := c.promptLine(prompt)
		if !ok {
			return "", false
		}
		if _, err := time.Parse("2006-01-02", line); err != nil {
			fmt.Fprintln(c.out, "Invalid date! Please enter a valid date in YYYY-MM-DD format.")
			continue
		}
		return line, true
	}
}
