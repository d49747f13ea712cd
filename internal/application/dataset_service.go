package application

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/maalberto-engineer/IoT-Data-Generator/config"
	"github.com/maalberto-engineer/IoT-Data-Generator/internal/domain/entities"
	"github.com/maalberto-engineer/IoT-Data-Generator/internal/domain/ports"
	"github.com/maalberto-engineer/IoT-Data-Generator/internal/pkg/logger"
)

var (
	ErrGenerationInProgress = errors.New("data generation is already in progress")
	ErrNoData               = errors.New("no data available, generate a dataset first")
)

type RunState string

const (
	RunStateIdle    RunState = "idle"
	RunStateRunning RunState = "running"
	RunStateReady   RunState = "ready"
	RunStateFailed  RunState = "failed"
)

type RunStatus struct {
	State         RunState   `json:"state"`
	DatasetID     string     `json:"dataset_id,omitempty"`
	GeneratedAt   *time.Time `json:"generated_at,omitempty"`
	UsersDone     int        `json:"users_done"`
	UsersTotal    int        `json:"users_total"`
	TotalUsers    int        `json:"total_users"`
	TotalReadings int        `json:"total_readings"`
	LastError     string     `json:"last_error,omitempty"`
}

// PreviewColumns is the 13-column layout of the dataset preview grid.
var PreviewColumns = []string{
	"Firstname", "Lastname", "Age", "Gender", "Username", "Address", "Email",
	"Date", "Time", "Outside Temp", "Outside Hum", "Room Temp", "Room Hum",
}

// DatasetService owns the single in-memory dataset and its generation
// lifecycle. Only one generation run is permitted at a time; a run failure
// leaves the previous dataset intact.
type DatasetService struct {
	mu         sync.Mutex
	generating bool
	state      RunState
	usersDone  int
	usersTotal int
	lastErr    string
	dataset    *entities.Dataset

	generator ports.Generator
	cfg       config.GeneratorConfig
	logger    logger.Logger
}

func NewDatasetService(generator ports.Generator, cfg config.GeneratorConfig) *DatasetService {
	return &DatasetService{
		state:     RunStateIdle,
		generator: generator,
		cfg:       cfg,
		logger:    logger.New("info", "development").WithField("component", "dataset_service"),
	}
}

// StartGeneration launches a generation run on a background goroutine.
// It returns ErrGenerationInProgress while a run is active.
func (s *DatasetService) StartGeneration(ctx context.Context) error {
	s.mu.Lock()
	if s.generating {
		s.mu.Unlock()
		return ErrGenerationInProgress
	}
	s.generating = true
	s.state = RunStateRunning
	s.usersDone = 0
	s.usersTotal = s.cfg.Users
	s.lastErr = ""
	s.mu.Unlock()

	go s.run(ctx)
	return nil
}

// Regenerate runs a generation synchronously, for the scheduler path.
func (s *DatasetService) Regenerate(ctx context.Context) error {
	s.mu.Lock()
	if s.generating {
		s.mu.Unlock()
		return ErrGenerationInProgress
	}
	s.generating = true
	s.state = RunStateRunning
	s.usersDone = 0
	s.usersTotal = s.cfg.Users
	s.lastErr = ""
	s.mu.Unlock()

	s.run(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastErr != "" {
		return errors.New(s.lastErr)
	}
	return nil
}

func (s *DatasetService) run(ctx context.Context) {
	started := time.Now()
	s.logger.Infof("Starting generation of %d users with %d readings each", s.cfg.Users, s.cfg.ReadingsPerUser)

	users, err := s.generator.Generate(ctx, s.cfg.Users, s.cfg.ReadingsPerUser, s.reportProgress)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.generating = false

	if err != nil {
		s.lastErr = err.Error()
		s.state = RunStateFailed
		s.logger.Errorf("Generation failed: %v", err)
		return
	}

	dataset := &entities.Dataset{
		ID:          uuid.New().String(),
		GeneratedAt: time.Now(),
		Users:       users,
	}
	s.dataset = dataset
	s.state = RunStateReady
	s.logger.Infof("Generation complete: %d users, %d readings in %v",
		len(dataset.Users), dataset.TotalReadings(), time.Since(started))
}

func (s *DatasetService) reportProgress(done, total int) {
	s.mu.Lock()
	s.usersDone = done
	s.usersTotal = total
	s.mu.Unlock()
}

func (s *DatasetService) Status() RunStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := RunStatus{
		State:      s.state,
		UsersDone:  s.usersDone,
		UsersTotal: s.usersTotal,
		LastError:  s.lastErr,
	}
	if s.dataset != nil {
		generatedAt := s.dataset.GeneratedAt
		status.DatasetID = s.dataset.ID
		status.GeneratedAt = &generatedAt
		status.TotalUsers = len(s.dataset.Users)
		status.TotalReadings = s.dataset.TotalReadings()
	}
	return status
}

// Current returns the latest complete dataset, or nil before the first
// successful run.
func (s *DatasetService) Current() *entities.Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dataset
}

func (s *DatasetService) Summary() *entities.DatasetSummary {
	return Summarize(s.Current())
}

// Preview returns up to rows preview lines, one per user, pairing the
// profile with the user's first sensor reading.
func (s *DatasetService) Preview(rows int) ([][]string, error) {
	dataset := s.Current()
	if dataset == nil {
		return nil, ErrNoData
	}

	if rows <= 0 || rows > len(dataset.Users) {
		rows = len(dataset.Users)
	}

	preview := make([][]string, 0, rows)
	for i := 0; i < len(dataset.Users) && len(preview) < rows; i++ {
		user := &dataset.Users[i]
		if len(user.SensorData) == 0 {
			continue
		}
		first := &user.SensorData[0]
		preview = append(preview, []string{
			user.Firstname,
			user.Lastname,
			formatInt(user.Age),
			user.Gender,
			user.Username,
			user.Address,
			user.Email,
			first.Date,
			first.Time,
			formatFloat(first.OutsideTemperature),
			formatFloat(first.OutsideHumidity),
			formatFloat(first.RoomTemperature),
			formatFloat(first.RoomHumidity),
		})
	}
	return preview, nil
}

func formatInt(v int) string {
	return strconv.Itoa(v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
