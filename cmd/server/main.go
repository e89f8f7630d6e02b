// cmd/server/main.go
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/unclebandit/wabablast-backend/internal/controller"
	"github.com/unclebandit/wabablast-backend/internal/db"
	"github.com/unclebandit/wabablast-backend/internal/handler"
	"github.com/unclebandit/wabablast-backend/internal/queue"
	"github.com/unclebandit/wabablast-backend/internal/repository"
	"github.com/unclebandit/wabablast-backend/internal/service"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	// Init DB
	db.Init()

	// Queue: RabbitMQ when configured, in-memory otherwise
	var q queue.Queue
	if url := os.Getenv("AMQP_URL"); url != "" {
		amqpQueue, err := queue.NewAMQPQueue(url)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer amqpQueue.Close()
		q = amqpQueue
	} else {
		log.Println("⚠️ AMQP_URL not set, using in-memory queue")
		mem := queue.NewInMemoryQueue()
		mem.Subscribe(service.JobsTopic, func(payload any) error {
			log.Printf("📩 queued message job: %+v\n", payload)
			return nil
		})
		q = mem
	}

	orgRepo := &repository.OrganizationRepository{DB: db.DB}
	contactRepo := &repository.ContactRepository{DB: db.DB}
	importBatchRepo := &repository.ImportBatchRepository{DB: db.DB}
	batchCampaignRepo := &repository.BatchCampaignRepository{DB: db.DB}
	campaignRepo := &repository.CampaignRepository{DB: db.DB}
	jobRepo := &repository.MessageJobRepository{DB: db.DB}

	importService := &service.ImportService{
		ContactRepo:     contactRepo,
		ImportBatchRepo: importBatchRepo,
		OrgRepo:         orgRepo,
	}

	batchCampaignService := &service.BatchCampaignService{
		BatchCampaignRepo: batchCampaignRepo,
		CampaignRepo:      campaignRepo,
		ContactRepo:       contactRepo,
		JobRepo:           jobRepo,
		OrgRepo:           orgRepo,
		Queue:             q,
		BatchCapacity:     service.DefaultBatchCapacity,
	}

	importController := &controller.ImportController{
		Validator:     service.NewRowValidator(),
		ImportService: importService,
	}

	batchCampaignController := &controller.BatchCampaignController{
		BatchCampaignService: batchCampaignService,
	}

	batchCampaignHandler := &handler.BatchCampaignHandler{
		Service: batchCampaignService,
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Organization-ID"},
	}))

	// Import routes
	r.Post("/import/parse", importController.ParseFile)
	r.Post("/import/validate", importController.ValidateRows)
	r.Post("/import/contacts", importController.ImportContacts)

	// Batch campaign routes
	r.Post("/campaigns/batch", batchCampaignController.CreateBatchCampaign)
	r.Get("/campaigns/batch", batchCampaignController.ListBatchCampaigns)
	r.Get("/campaigns/batch/{id}", batchCampaignHandler.GetBatchCampaignHandlerWithStats)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("🚀 Server running on :" + port)
	log.Fatal(http.ListenAndServe(":"+port, r))
}
