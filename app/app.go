package app

import (
	"context"
	"os"

	"go-bank-simulator/cli"
	"go-bank-simulator/config"
	"go-bank-simulator/db"
	"go-bank-simulator/logger"
	"go-bank-simulator/mail"
	"go-bank-simulator/repository"
	"go-bank-simulator/service"
)

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	if err := db.Migrate(); err != nil {
		logger.Log.Fatalf("Error migrating the database: %v", err)
	}

	// --- Wiring All Layers Together ---
	accountRepo := repository.NewAccountRepository(database)
	transactionRepo := repository.NewTransactionRepository(database)

	ledgerService := service.NewLedgerService(transactionRepo)
	accountService, err := service.NewAccountService(database, accountRepo, ledgerService)
	if err != nil {
		logger.Log.Fatalf("Error initializing account service: %v", err)
	}
	alertService := service.NewAlertService(mail.NewSMTPMailer())
	transactionService := service.NewTransactionService(database, accountService, ledgerService, alertService)
	reportService := service.NewReportService(ledgerService)

	console := cli.New(os.Stdin, os.Stdout, accountService, transactionService, reportService)
	console.Run(context.Background())

	logger.Log.Info("Session ended")
}
