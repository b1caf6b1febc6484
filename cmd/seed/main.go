// Package main provides a tool to seed the database with test referral data.
//
// This creates a handful of providers with recommendations and attribute
// votes to exercise profile ranking and social-proof features locally.
//
// Usage:
//
//	DATA_PATH=~/teranga go run ./cmd/seed
//	DATA_PATH=~/teranga go run ./cmd/seed --claim  # Also claim some providers
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/terangaapp/teranga-server/internal/domain"
	"github.com/terangaapp/teranga-server/internal/phone"
	"github.com/terangaapp/teranga-server/internal/service"
	"github.com/terangaapp/teranga-server/internal/store/sqlite"
)

var claimSome = flag.Bool("claim", false, "Claim a few seeded providers for test users")

type seedProvider struct {
	name     string
	category string
	city     string
	phone    string
	notes    []string
}

var seedData = []seedProvider{
	{
		name: "Moussa Diop", category: "plumber", city: "Dakar", phone: "77 123 45 67",
		notes: []string{
			"Fixed the kitchen sink fast. Liked: Punctual, Fair price | Watch: Parking",
			"Liked: Punctual, Clean work",
			"Came the same day. Liked: Punctual",
		},
	},
	{
		name: "Awa Ndiaye", category: "electrician", city: "Dakar", phone: "+221761112233",
		notes: []string{
			"Rewired the whole flat. Liked: Careful, Explains things",
			"Liked: Careful | Watch: Availability, Price",
		},
	},
	{
		name: "Ibrahima Fall", category: "plumber", city: "Thiès", phone: "70 555 66 77",
		notes: []string{
			"Watch: Slow to reply",
		},
	},
	{
		name: "Fatou Sarr", category: "cleaner", city: "Saint-Louis", phone: "78 999 00 11",
		notes: []string{
			"Liked: Thorough, Friendly, Trustworthy",
			"Liked: Thorough",
		},
	},
}

var seedVotes = []struct {
	provider  int // index into seedData
	attribute domain.AttributeKind
	kind      domain.VoteKind
	text      string
}{
	{0, domain.AttributeTimeliness, domain.VoteLike, ""},
	{0, domain.AttributeJobQuality, domain.VoteLike, ""},
	{0, domain.AttributeCleanliness, domain.VoteNote, "left some dust behind"},
	{1, domain.AttributeJobQuality, domain.VoteLike, ""},
	{1, domain.AttributeReliability, domain.VoteNote, "had to reschedule twice"},
	{3, domain.AttributeRespectfulness, domain.VoteLike, ""},
}

// voteRequests converts the static table into service-level requests.
func voteRequests(created []string, voterFor func() string) []service.CastRequest {
	reqs := make([]service.CastRequest, 0, len(seedVotes))
	for _, v := range seedVotes {
		reqs = append(reqs, service.CastRequest{
			ProviderID: created[v.provider],
			Attribute:  string(v.attribute),
			Kind:       string(v.kind),
			Text:       v.text,
			VoterID:    voterFor(),
		})
	}
	return reqs
}

func main() {
	flag.Parse()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/teranga")
	}
	if err := os.MkdirAll(dataPath, 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dataPath, "teranga.db")
	fmt.Printf("Opening database at: %s\n", dbPath)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	s, err := sqlite.Open(dbPath, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	key, err := phone.LoadOrGenerateKey(dataPath)
	if err != nil {
		log.Fatalf("Failed to load encryption key: %v", err)
	}
	crypto := phone.NewCrypto(key, os.Getenv("IDENTITY_SALT"))

	providerSvc := service.NewProviderService(s, crypto, "+221", logger)
	recSvc := service.NewRecommendationService(s, providerSvc, logger)
	voteSvc := service.NewVoteService(s, logger)

	ctx := context.Background()

	// A pool of recommender identities so counts look organic.
	recommenders := []string{"user_seed_ami", "user_seed_binta", "user_seed_cheikh", "user_seed_daba"}

	created := make([]string, 0, len(seedData))
	totalRecs := 0
	for _, sp := range seedData {
		var providerID string
		for i, note := range sp.notes {
			result, err := recSvc.Add(ctx, service.AddRequest{
				Name:          sp.name,
				Category:      sp.category,
				City:          sp.city,
				Phone:         sp.phone,
				Note:          note,
				RecommenderID: recommenders[i%len(recommenders)],
			})
			if err != nil {
				log.Fatalf("Failed to add recommendation for %s: %v", sp.name, err)
			}
			providerID = result.Provider.ID
			totalRecs++
		}
		created = append(created, providerID)
		fmt.Printf("  %s (%s, %s): %d recommendations\n", sp.name, sp.category, sp.city, len(sp.notes))
	}

	totalVotes := 0
	voterFor := func() string { return recommenders[rand.Intn(len(recommenders))] }
	for _, req := range voteRequests(created, voterFor) {
		if _, err := voteSvc.Cast(ctx, req); err != nil {
			log.Fatalf("Failed to cast vote: %v", err)
		}
		totalVotes++
	}

	if *claimSome {
		for i, sp := range seedData[:2] {
			result, err := providerSvc.Claim(ctx, service.ClaimRequest{
				Phone:  sp.phone,
				UserID: fmt.Sprintf("user_seed_owner_%d", i),
			})
			if err != nil {
				log.Fatalf("Failed to claim %s: %v", sp.name, err)
			}
			fmt.Printf("  Claimed %s (recommendations: %d)\n", sp.name, result.RecommendationCount)
		}
	}

	fmt.Printf("\nSeeded %d providers, %d recommendations, %d votes\n", len(created), totalRecs, totalVotes)
}
