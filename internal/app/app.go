package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gracelabs/verification-service/config"
	"github.com/gracelabs/verification-service/internal/database"
	"github.com/gracelabs/verification-service/internal/detector"
	"github.com/gracelabs/verification-service/internal/extractor"
	"github.com/gracelabs/verification-service/internal/handler"
	"github.com/gracelabs/verification-service/internal/metrics"
	"github.com/gracelabs/verification-service/internal/models"
	"github.com/gracelabs/verification-service/internal/orchestrator"
	"github.com/gracelabs/verification-service/internal/publisher"
	"github.com/gracelabs/verification-service/internal/repository/memory"
	"github.com/gracelabs/verification-service/internal/repository/posgrest"
	"github.com/gracelabs/verification-service/internal/service"
	"github.com/gracelabs/verification-service/internal/subscriber"
	"github.com/gracelabs/verification-service/internal/validator"
	"github.com/sirupsen/logrus"
)

type App struct {
	config *config.Config
	Router *gin.Engine
}

func (a *App) Initialize(cfg *config.Config) {
	a.config = cfg

	metrics.RegisterMetrics()

	billing, scams, complaints := a.initStores()

	publishTopics := strings.Split(cfg.Kafka.PublishTopics, ",")
	eventPublisher := publisher.NewKafkaPublisher(cfg.Kafka.Brokers, publishTopics, cfg.GetRetryConfig())

	verificationService := service.NewVerificationService(
		extractor.NewExtractor(),
		validator.NewValidator(billing, a.validatorConfig()),
		detector.NewDetector(scams, complaints, a.detectorConfig()),
		orchestrator.NewOrchestrator(a.orchestratorConfig()),
		eventPublisher,
	)
	verificationHandler := handler.NewVerificationHandler(verificationService)

	a.Router = gin.Default()
	a.Router.Use(gin.Recovery())
	a.RegisterRoutes(verificationHandler)

	a.initSubscribers(verificationHandler, eventPublisher)
}

func (a *App) Run() {
	err := a.Router.Run(fmt.Sprintf(":%s", a.config.APP.PORT))
	if err != nil {
		panic(err)
	}
}

func (a *App) initStores() (validator.BillingStore, detector.ScamStore, detector.ComplaintStore) {
	if a.config.APP.STORAGE == "postgres" {
		db, err := a.config.DB.GormConnect()
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}

		if err := db.AutoMigrate(
			&models.Customer{},
			&models.Charge{},
			&models.Payee{},
			&models.ScamSignature{},
			&models.ComplaintRecord{},
		); err != nil {
			log.Fatalf("failed to auto migrate: %v", err)
		}

		return posgrest.NewBillingStore(db), posgrest.NewScamStore(db), posgrest.NewComplaintStore(db)
	}

	logrus.Info("running with in-memory stores")

	billing := memory.NewBillingStore()
	complaints := memory.NewComplaintStore()
	database.Seed(billing, complaints)

	return billing, memory.NewScamStore(), complaints
}

func (a *App) validatorConfig() validator.Config {
	return validator.Config{
		AmountTolerance:   a.config.Verification.AmountTolerance,
		ExpectedChargeMin: a.config.Verification.ExpectedChargeMin,
		ExpectedChargeMax: a.config.Verification.ExpectedChargeMax,
	}
}

func (a *App) detectorConfig() detector.Config {
	cfg := detector.DefaultConfig()
	cfg.HighValueThreshold = a.config.Verification.HighValueThreshold
	cfg.LowValueThreshold = a.config.Verification.LowValueThreshold
	cfg.NightStartHour = a.config.Verification.NightStartHour
	cfg.NightEndHour = a.config.Verification.NightEndHour

	return cfg
}

func (a *App) orchestratorConfig() orchestrator.Config {
	cfg := orchestrator.DefaultConfig()
	cfg.SafeCutoff = a.config.Verification.SafeCutoff
	cfg.ScamCutoff = a.config.Verification.ScamCutoff

	return cfg
}

func (a *App) initSubscribers(verificationHandler *handler.VerificationHandler, eventPublisher *publisher.KafkaPublisher) {
	brokers := strings.Split(a.config.Kafka.Brokers, ",")
	topics := strings.Split(a.config.Kafka.SubscriberTopics, ",")
	groupID := a.config.Kafka.VerificationConsumerGroup

	consumer := subscriber.NewMultiTopicConsumer(brokers, topics, groupID, eventPublisher, a.config.GetRetryConfig())

	ctx := context.Background()
	go consumer.Listen(ctx, func(topic string, value []byte) error {
		log.Printf("📩 Received message → topic=%s value=%s\n", topic, string(value))
		err := verificationHandler.HandleEvents(ctx, topic, value)
		if err != nil {
			logrus.Error(err.Error())
		}
		return err
	})
}
