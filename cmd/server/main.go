package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/adapters/grpc/handler"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/adapters/repository/postgres"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/allocation"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/calendar"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/cascade"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/contract"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/employee"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/facility"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/core/post"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/platform/config"
	pg "github.com/JPCalsavara/InterceptorSystem-sub000/internal/platform/db/postgres"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/platform/health"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/platform/jobs"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/platform/logging"
	"github.com/JPCalsavara/InterceptorSystem-sub000/internal/platform/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		logrus.Fatalf("failed to configure logging: %v", err)
	}

	dbPool, err := pg.NewPool(ctx, cfg.Database, cfg.Business.Location)
	if err != nil {
		logger.Fatalf("failed to initialize database pool: %v", err)
	}
	defer dbPool.Close()

	clock := calendar.SystemClock{Location: cfg.Business.Location}
	tx := pg.NewTransactionManager(dbPool)

	facilityRepo := postgres.NewFacilityRepository(dbPool)
	contractRepo := postgres.NewContractRepository(dbPool)
	postRepo := postgres.NewPostRepository(dbPool)
	employeeRepo := postgres.NewEmployeeRepository(dbPool)
	allocationRepo := postgres.NewAllocationRepository(dbPool)

	facilitySvc := facility.NewService(facilityRepo, clock, tx)
	contractSvc := contract.NewService(contractRepo, facilityRepo, clock, tx)
	postSvc := post.NewService(postRepo, facilityRepo, clock, tx)
	employeeSvc := employee.NewService(employeeRepo, facilityRepo, contractRepo, clock, tx)
	allocationSvc := allocation.NewService(allocationRepo, employeeRepo, postRepo, clock, tx,
		allocation.WithLocker(pg.NewAdvisoryLocker()),
		allocation.WithLogger(logger.WithField("component", "allocation")),
	)
	orchestrator := cascade.NewOrchestrator(facilitySvc, contractSvc, postSvc, clock, tx, logger.WithField("component", "cascade"))

	staffing := handler.NewStaffingGrpcHandler(allocationSvc, orchestrator, employeeSvc, postSvc)
	grpcServer := server.New(cfg.Server.ListenAddr, staffing, logger.WithField("component", "grpc"))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return grpcServer.Run(gctx)
	})

	if cfg.Health.ListenAddr != "" {
		healthServer := health.NewServer(cfg.Health.ListenAddr, dbPool, logger.WithField("component", "health"))
		g.Go(func() error {
			return healthServer.Run(gctx)
		})
	}

	if cfg.Jobs.ContractExpirySchedule != "" {
		scheduler := jobs.NewScheduler(cfg.Business.Location, logger.WithField("component", "jobs"))
		if err := scheduler.AddContractExpiry(cfg.Jobs.ContractExpirySchedule, contractSvc); err != nil {
			logger.Fatalf("failed to schedule jobs: %v", err)
		}
		g.Go(func() error {
			return scheduler.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		logger.Fatalf("server stopped with error: %v", err)
	}
	logger.Info("server stopped")
}
