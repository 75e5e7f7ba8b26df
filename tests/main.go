// Seeding harness: populates a local database with providers, declared
// availability and sample requests for exercising the dispatch endpoints.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"carematch/config"
	"carematch/database"
	"carematch/models"
	"carematch/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadConfig()
	database.InitDB()
	db := database.DB()
	providerColl := db.Collection("providers")
	availColl := db.Collection("provider_availability")
	requestColl := db.Collection("service_requests")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, coll := range []string{"providers", "provider_availability", "service_requests", "offers", "occurrences"} {
		if _, err := db.Collection(coll).DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatalf("Failed to clear %s collection: %v", coll, err)
		}
	}

	serviceTypes := []models.ServiceType{"childcare", "eldercare", "petcare"}
	regions := []string{"North Shore", "Downtown", "Westside"}
	cities := []string{"Springfield", "Riverton", "Lakeview"}
	windows := []models.TimeWindow{models.WindowMorning, models.WindowAfternoon, models.WindowEvening}

	hash, err := bcrypt.GenerateFromPassword([]byte("seed-password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	today := time.Now()
	var providers []interface{}
	var availability []interface{}

	for i := 0; i < 12; i++ {
		st := serviceTypes[i%len(serviceTypes)]
		region := regions[i%len(regions)]
		p := models.Provider{
			ID:           fmt.Sprintf("prov-%03d", i+1),
			Name:         fmt.Sprintf("Caregiver %d", i+1),
			Email:        fmt.Sprintf("caregiver%d@example.com", i+1),
			PasswordHash: string(hash),
			Profile: models.ProviderProfile{
				ServicesOffered: []models.ServiceType{st},
				Region:          region,
				WorkRegions:     []string{regions[(i+1)%len(regions)]},
				City:            cities[i%len(cities)],
				PostalCode:      fmt.Sprintf("%02d%03d", i%3+10, rand.Intn(1000)),
				Pricing: map[models.ServiceType]models.ServicePrice{
					st: {Unit: "hour", Amount: float64(15 + rand.Intn(20))},
				},
			},
			CreatedAt: today,
		}
		providers = append(providers, p)

		// Declare the next 14 days across all windows for every other provider.
		if i%2 == 0 {
			for d := 0; d < 14; d++ {
				date := today.AddDate(0, 0, d).Format(models.DateLayout)
				for _, w := range windows {
					availability = append(availability, models.ProviderAvailability{
						ProviderID:  p.ID,
						Date:        date,
						TimeWindow:  w,
						IsAvailable: true,
					})
				}
			}
		}
	}

	if _, err := providerColl.InsertMany(ctx, providers); err != nil {
		log.Fatalf("Failed to seed providers: %v", err)
	}
	if _, err := availColl.InsertMany(ctx, availability); err != nil {
		log.Fatalf("Failed to seed availability: %v", err)
	}

	var requests []interface{}
	for i := 0; i < 6; i++ {
		st := serviceTypes[i%len(serviceTypes)]
		req := models.ServiceRequest{
			ID:          uuid.New().String(),
			RequesterID: fmt.Sprintf("owner-%02d", i%2+1),
			ServiceType: st,
			Date:        today.AddDate(0, 0, i+1).Format(models.DateLayout),
			TimeWindow:  windows[i%len(windows)],
			Location: models.Location{
				City:       cities[i%len(cities)],
				PostalCode: fmt.Sprintf("%02d%03d", i%3+10, rand.Intn(1000)),
				Region:     regions[i%len(regions)],
			},
			SubjectDetails: "seeded request",
			Status:         models.StatusPending,
			CreatedAt:      today,
		}
		if i == 0 {
			req.IsRecurring = true
			req.RecurrencePattern = models.RecurWeekdays
			req.RecurrenceEndDate = today.AddDate(0, 0, 14).Format(models.DateLayout)
		}
		requests = append(requests, req)
	}
	if _, err := requestColl.InsertMany(ctx, requests); err != nil {
		log.Fatalf("Failed to seed requests: %v", err)
	}

	log.Printf("Seeded %d providers, %d availability slots, %d requests",
		len(providers), len(availability), len(requests))

	// An operator token for exercising the dispatch endpoints by hand.
	token, err := utils.GenerateToken("seed-operator", "operator", 24*time.Hour)
	if err != nil {
		log.Fatalf("Failed to mint operator token: %v", err)
	}
	log.Printf("Operator token (valid 24h): %s", token)
}
