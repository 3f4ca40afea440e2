package store

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/salesdesk/internal/core/screens"
)

// DefaultSeedClients is the number of demo clients generated by DemoRecords
// when n is not positive.
const DefaultSeedClients = 40

var (
	companyPrefixes = []string{"Acme", "Globex", "Initech", "Umbrella", "Stark", "Wayne", "Hooli", "Vandelay", "Cyberdyne", "Soylent"}
	companySuffixes = []string{"Corp", "Industries", "Labs", "Holdings", "Group", "Systems"}
	cities          = []string{"Austin", "Boston", "Chicago", "Denver", "Seattle", "Atlanta", "Portland"}
	firstNames      = []string{"Ana", "Ben", "Chloe", "Dev", "Elena", "Farid", "Grace", "Hiro", "Ines", "Jonas"}
	lastNames       = []string{"Silva", "Okafor", "Nguyen", "Patel", "Kowalski", "Haddad", "Larsen", "Moreau"}
	projectNouns    = []string{"Migration", "Rollout", "Integration", "Audit", "Platform", "Support Renewal"}
)

// seedEpoch anchors generated dates so a given seed always yields the same data.
var seedEpoch = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// DemoRecords generates deterministic demo rows for every built-in screen.
// nClients sizes the data set; the other tables scale from it.
func DemoRecords(nClients int, seed uint64) []Record {
	if nClients <= 0 {
		nClients = DefaultSeedClients
	}
	g := &generator{rng: rand.New(rand.NewPCG(seed, seed^0x5eed))}

	clients := make([]string, nClients)
	var records []Record
	for i := range nClients {
		name := g.company()
		clients[i] = name
		records = append(records, Record{Table: "clients", Values: map[string]any{
			"id":             demoID("clients", i),
			"name":           name,
			"industry":       g.pick(screens.Industries),
			"city":           g.pick(cities),
			"annual_revenue": float64(g.rng.IntN(500)+1) * 10000,
			"status":         g.pick(screens.ClientStatuses),
			"created_at":     g.date(-720, 0),
			"contact_email":  g.email(name),
		}})
	}

	for i := range nClients * 2 {
		company := g.pick(clients)
		records = append(records, Record{Table: "leads", Values: map[string]any{
			"id":         demoID("leads", i),
			"name":       g.person(),
			"company":    company,
			"email":      g.email(company),
			"source":     g.pick(screens.LeadSources),
			"score":      int64(g.rng.IntN(101)),
			"status":     g.pick(screens.LeadStatuses),
			"created_at": g.date(-180, 0),
		}})
	}

	for i := range nClients * 2 {
		client := g.pick(clients)
		stage := g.pick(screens.OpportunityStages)
		records = append(records, Record{Table: "opportunities", Values: map[string]any{
			"id":          demoID("opportunities", i),
			"name":        client + " " + g.pick(projectNouns),
			"client":      client,
			"stage":       stage,
			"amount":      float64(g.rng.IntN(2000)+10) * 250,
			"probability": stageProbability(stage),
			"close_date":  g.date(-60, 180),
			"owner":       g.person(),
		}})
	}

	for i := range max(nClients/2, 1) {
		client := g.pick(clients)
		records = append(records, Record{Table: "rfps", Values: map[string]any{
			"id":       demoID("rfps", i),
			"title":    client + " " + g.pick(projectNouns) + " RFP",
			"client":   client,
			"status":   g.pick(screens.RFPStatuses),
			"due_date": g.date(-30, 90),
			"value":    float64(g.rng.IntN(400)+5) * 1000,
		}})
	}

	for i := range max(nClients/2, 1) {
		client := g.pick(clients)
		start := g.date(-365, 60)
		records = append(records, Record{Table: "sows", Values: map[string]any{
			"id":         demoID("sows", i),
			"title":      client + " " + g.pick(projectNouns),
			"client":     client,
			"status":     g.pick(screens.SOWStatuses),
			"start_date": start,
			"end_date":   start.AddDate(0, g.rng.IntN(12)+1, 0),
			"value":      float64(g.rng.IntN(300)+10) * 1000,
		}})
	}

	for i := range 8 {
		name := g.person()
		records = append(records, Record{Table: "users", Values: map[string]any{
			"id":         demoID("users", i),
			"name":       name,
			"email":      strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@salesdesk.example",
			"role":       screens.UserRoles[i%len(screens.UserRoles)],
			"active":     i%5 != 4,
			"last_login": seedEpoch.Add(time.Duration(g.rng.IntN(24*300)) * time.Hour),
		}})
	}

	return records
}

// demoID derives a stable uuid from the table and position.
func demoID(table string, i int) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, fmt.Appendf(nil, "salesdesk/%s/%d", table, i)).String()
}

func stageProbability(stage string) int64 {
	switch stage {
	case "Discovery":
		return 10
	case "Proposal":
		return 40
	case "Negotiation":
		return 70
	case "Closed Won":
		return 100
	default:
		return 0
	}
}

type generator struct {
	rng *rand.Rand
}

func (g *generator) pick(values []string) string {
	return values[g.rng.IntN(len(values))]
}

func (g *generator) company() string {
	return g.pick(companyPrefixes) + " " + g.pick(companySuffixes)
}

func (g *generator) person() string {
	return g.pick(firstNames) + " " + g.pick(lastNames)
}

func (g *generator) email(company string) string {
	domain := strings.ToLower(strings.Fields(company)[0])
	return strings.ToLower(g.pick(firstNames)) + "@" + domain + ".example"
}

// date returns a day offset from seedEpoch by a random number of days in
// [from, to].
func (g *generator) date(from, to int) time.Time {
	return seedEpoch.AddDate(0, 0, from+g.rng.IntN(to-from+1))
}
