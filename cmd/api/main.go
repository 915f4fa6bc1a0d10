package main

import (
	"fmt"
	"net/http"

	"github.com/ladangworks/estate-backend-go/internal/config"
	appHTTP "github.com/ladangworks/estate-backend-go/internal/handler/http"
	"github.com/ladangworks/estate-backend-go/internal/pkg/database"
	"github.com/ladangworks/estate-backend-go/internal/repository/postgresql"
	deductionService "github.com/ladangworks/estate-backend-go/internal/service/deduction"
	paycalcService "github.com/ladangworks/estate-backend-go/internal/service/paycalc"
	workerService "github.com/ladangworks/estate-backend-go/internal/service/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	deductionRepo := postgresql.NewDeductionRepository(db)
	workerRepo := postgresql.NewWorkerRepository(db)
	payCalcRepo := postgresql.NewPayCalcRepository(db)

	deductionSvc := deductionService.NewDeductionService(db, deductionRepo)
	workerSvc := workerService.NewWorkerService(db, workerRepo)
	payCalcSvc := paycalcService.NewPayCalcService(db, payCalcRepo, workerRepo, deductionRepo)

	deductionHandler := appHTTP.NewDeductionHandler(deductionSvc)
	workerHandler := appHTTP.NewWorkerHandler(workerSvc)
	payCalcHandler := appHTTP.NewPayCalcHandler(payCalcSvc)

	router := appHTTP.NewRouter(deductionHandler, workerHandler, payCalcHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
