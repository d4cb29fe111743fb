package generator

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/studyflow/fixturegen/internal/config"
	"github.com/studyflow/fixturegen/internal/models"
	"github.com/studyflow/fixturegen/internal/sampling"
)

const roomNameRetries = 20

// Letters safe for room labels, omitting the easily-confused I/O/Y.
const roomLetters = "ABCDEFGHJKMNPQRSTUVWXZ"

var (
	buildings = []string{
		"Engineering Center", "Science Hall", "Computer Science Building",
		"Chemistry Complex", "Physics Pavilion", "Biology Annex",
		"Mathematics Tower", "Business Center", "Humanities Hall",
		"Library West", "Art & Design Studios", "Music & Performing Arts",
		"Psychology Building", "Health Sciences Center", "Education Hall",
		"Athletics Complex", "Innovation Hub", "Data Science Institute",
		"Law School", "Medical Research Building",
	}

	// Repetition weights lecture and lab rooms over the rest.
	roomTypes = []string{
		"lecture", "lecture", "lecture",
		"lab", "lab", "lab",
		"seminar", "seminar",
		"studio", "room", "room",
	}
)

// RoomGenerator builds synthetic room rows with unique (building, name)
// pairs.
type RoomGenerator struct {
	opts   config.RoomOptions
	rng    *rand.Rand
	logger zerolog.Logger
}

// NewRoomGenerator seeds a generator from opts.
func NewRoomGenerator(opts config.RoomOptions, logger zerolog.Logger) *RoomGenerator {
	return &RoomGenerator{
		opts:   opts,
		rng:    rand.New(rand.NewSource(opts.Seed)),
		logger: logger.With().Str("component", "room_generator").Logger(),
	}
}

// Generate produces opts.Count room rows. Name collisions within a building
// are retried a bounded number of times, then forced unique with a numeric
// suffix.
func (g *RoomGenerator) Generate(ctx context.Context) ([]models.Room, error) {
	rows := make([]models.Room, 0, g.opts.Count)
	seen := make(map[pair]bool, g.opts.Count)
	for i := 0; i < g.opts.Count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows = append(rows, g.row(seen))
	}
	g.logger.Info().Int("rows", len(rows)).Msg("rooms generated")
	return rows, nil
}

func (g *RoomGenerator) row(seen map[pair]bool) models.Room {
	building := sampling.Pick(g.rng, buildings)
	for attempt := 0; attempt < roomNameRetries; attempt++ {
		rtype := sampling.Pick(g.rng, roomTypes)
		name := g.roomName(rtype)
		if !seen[pair{building, name}] {
			seen[pair{building, name}] = true
			return models.Room{Name: name, Building: building, Capacity: g.capacity(rtype)}
		}
	}
	rtype := sampling.Pick(g.rng, roomTypes)
	name := fmt.Sprintf("%s-%d", g.roomName(rtype), sampling.IntBetween(g.rng, 1000, 9999))
	seen[pair{building, name}] = true
	return models.Room{Name: name, Building: building, Capacity: g.capacity(rtype)}
}

func (g *RoomGenerator) roomName(rtype string) string {
	switch rtype {
	case "lecture":
		return fmt.Sprintf("Lecture Hall %d", sampling.IntBetween(g.rng, 1, 300))
	case "lab":
		name := fmt.Sprintf("Lab %d", sampling.IntBetween(g.rng, 1, 80))
		if sampling.Chance(g.rng, 0.5) {
			name += g.letter()
		}
		return name
	case "seminar":
		return fmt.Sprintf("Seminar %d", sampling.IntBetween(g.rng, 100, 599))
	case "studio":
		return fmt.Sprintf("Studio %s-%d", g.letter(), sampling.IntBetween(g.rng, 1, 20))
	}
	// generic room: floor-number, e.g. 2-14, 3-08
	return fmt.Sprintf("%d-%02d", sampling.IntBetween(g.rng, 1, 6), sampling.IntBetween(g.rng, 1, 35))
}

func (g *RoomGenerator) capacity(rtype string) int {
	switch rtype {
	case "lecture":
		return sampling.IntBetween(g.rng, 80, 300)
	case "lab":
		return sampling.IntBetween(g.rng, 12, 30)
	case "seminar":
		return sampling.IntBetween(g.rng, 10, 24)
	case "studio":
		return sampling.IntBetween(g.rng, 15, 35)
	}
	return sampling.IntBetween(g.rng, 18, 45)
}

func (g *RoomGenerator) letter() string {
	return string(roomLetters[g.rng.Intn(len(roomLetters))])
}
