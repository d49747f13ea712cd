package fakegen

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/maalberto-engineer/IoT-Data-Generator/config"
	"github.com/maalberto-engineer/IoT-Data-Generator/internal/domain/entities"
	"github.com/maalberto-engineer/IoT-Data-Generator/internal/domain/ports"
	"github.com/maalberto-engineer/IoT-Data-Generator/internal/pkg/logger"
)

const progressEvery = 10

var genders = []string{"Male", "Female"}

// FakeGenerator synthesizes user profiles and their sensor readings from
// uniform draws within the configured ranges.
type FakeGenerator struct {
	cfg    config.GeneratorConfig
	faker  *gofakeit.Faker
	logger logger.Logger
}

func NewFakeGenerator(cfg config.GeneratorConfig) (*FakeGenerator, error) {
	if _, err := time.Parse(entities.DateLayout, cfg.StartDate); err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", cfg.StartDate, err)
	}

	return &FakeGenerator{
		cfg:    cfg,
		faker:  gofakeit.New(cfg.Seed),
		logger: logger.New("info", "development").WithField("component", "fake_generator"),
	}, nil
}

func (g *FakeGenerator) Generate(ctx context.Context, users, readingsPerUser int, progress ports.ProgressFunc) ([]entities.UserRecord, error) {
	if users <= 0 {
		return []entities.UserRecord{}, nil
	}
	if readingsPerUser < 0 {
		readingsPerUser = 0
	}

	g.logger.Infof("Generating %d users with %d readings each", users, readingsPerUser)

	records := make([]entities.UserRecord, 0, users)
	for i := 0; i < users; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("generation interrupted: %w", err)
		}

		user := g.generateUser()
		user.SensorData = g.generateReadings(readingsPerUser)
		records = append(records, user)

		if progress != nil && ((i+1)%progressEvery == 0 || i+1 == users) {
			progress(i+1, users)
		}
	}

	g.logger.Infof("Generated %d users with %d total readings", len(records), len(records)*readingsPerUser)
	return records, nil
}

func (g *FakeGenerator) generateUser() entities.UserRecord {
	return entities.UserRecord{
		Firstname: g.faker.FirstName(),
		Lastname:  g.faker.LastName(),
		Age:       g.faker.Number(18, 80),
		Gender:    g.faker.RandomString(genders),
		Username:  g.faker.Username(),
		Address:   g.faker.Address().Address,
		Email:     g.faker.Email(),
	}
}

func (g *FakeGenerator) generateReadings(count int) []entities.SensorRecord {
	readings := make([]entities.SensorRecord, 0, count)

	current, _ := time.Parse(entities.DateLayout, g.cfg.StartDate)
	for i := 0; i < count; i++ {
		outsideTemp := g.faker.Float64Range(g.cfg.OutsideTempMin, g.cfg.OutsideTempMax)
		outsideHumidity := g.faker.Float64Range(g.cfg.OutsideHumidityMin, g.cfg.OutsideHumidityMax)

		// Room values trail the outside values by a bounded nonnegative
		// offset; rounding is monotonic, so the invariant survives it.
		roomTemp := outsideTemp - g.faker.Float64Range(0, g.cfg.MaxRoomOffset)
		roomHumidity := outsideHumidity - g.faker.Float64Range(0, g.cfg.MaxRoomOffset)

		readings = append(readings, entities.SensorRecord{
			Date:               current.Format(entities.DateLayout),
			Time:               current.Format(entities.TimeLayout),
			OutsideTemperature: round2(outsideTemp),
			OutsideHumidity:    round2(outsideHumidity),
			RoomTemperature:    round2(roomTemp),
			RoomHumidity:       round2(roomHumidity),
		})

		current = current.Add(g.cfg.ReadingInterval)
	}

	return readings
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
