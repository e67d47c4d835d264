package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Hiroshi025/Nebura-sub000/models"
)

// Job is a static payroll entry. BasePay scales with rank and skill.
type Job struct {
	Name     string
	BasePay  float64
	Cooldown time.Duration
}

var defaultJobs = []Job{
	{Name: "miner", BasePay: 20, Cooldown: 30 * time.Minute},
	{Name: "farmer", BasePay: 15, Cooldown: 20 * time.Minute},
	{Name: "chef", BasePay: 25, Cooldown: 45 * time.Minute},
	{Name: "developer", BasePay: 40, Cooldown: time.Hour},
}

// shiftsPerRank work shifts promote the player one rank.
const shiftsPerRank = 10

type jobService struct {
	uowFactory UnitOfWorkFactory
	jobs       []Job
	now        func() time.Time
}

// NewJobService creates a new job service backed by the default job board
func NewJobService(uowFactory UnitOfWorkFactory) JobService {
	return &jobService{uowFactory: uowFactory, jobs: defaultJobs, now: time.Now}
}

func (s *jobService) Jobs() []Job {
	out := make([]Job, len(s.jobs))
	copy(out, s.jobs)
	return out
}

func (s *jobService) findJob(name string) *Job {
	name = strings.ToLower(strings.TrimSpace(name))
	for i := range s.jobs {
		if s.jobs[i].Name == name {
			return &s.jobs[i]
		}
	}
	return nil
}

func (s *jobService) Join(ctx context.Context, userID, guildID, jobName string) (*models.BalanceRecord, error) {
	if err := ValidateID(userID); err != nil {
		return nil, err
	}
	if err := ValidateID(guildID); err != nil {
		return nil, err
	}

	job := s.findJob(jobName)
	if job == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownJob, jobName)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	rec, err := getOrCreateBalance(ctx, uow, userID, guildID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	rec.Job = job.Name
	rec.JobRank = 0
	rec.JobStartDate = &now
	rec.LastWorkDate = nil
	rec.JobCooldown = int64(job.Cooldown / time.Second)
	if rec.Skills == nil {
		rec.Skills = map[string]int{}
	}

	if err := uow.Balances().UpdateJob(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return rec, nil
}

func (s *jobService) Quit(ctx context.Context, userID, guildID string) error {
	if err := ValidateID(userID); err != nil {
		return err
	}
	if err := ValidateID(guildID); err != nil {
		return err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	rec, err := getOrCreateBalance(ctx, uow, userID, guildID)
	if err != nil {
		return err
	}
	if rec.Job == "" {
		return ErrNoJob
	}

	rec.Job = ""
	rec.JobRank = 0
	rec.JobStartDate = nil
	rec.LastWorkDate = nil
	rec.JobCooldown = 0

	if err := uow.Balances().UpdateJob(ctx, rec); err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}

	return uow.Commit()
}

func (s *jobService) Work(ctx context.Context, userID, guildID string) (*models.WorkResult, error) {
	if err := ValidateID(userID); err != nil {
		return nil, err
	}
	if err := ValidateID(guildID); err != nil {
		return nil, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	rec, err := getOrCreateBalance(ctx, uow, userID, guildID)
	if err != nil {
		return nil, err
	}
	if rec.Job == "" {
		return nil, ErrNoJob
	}

	job := s.findJob(rec.Job)
	if job == nil {
		// Job removed from the board while held; treat as quit.
		return nil, fmt.Errorf("%w: %q", ErrUnknownJob, rec.Job)
	}

	now := s.now()
	cooldown := time.Duration(rec.JobCooldown) * time.Second
	if rec.LastWorkDate != nil {
		ready := rec.LastWorkDate.Add(cooldown)
		if now.Before(ready) {
			return nil, &CooldownError{Until: ready}
		}
	}

	if rec.Skills == nil {
		rec.Skills = map[string]int{}
	}
	skill := rec.Skills[rec.Job]

	// Pay grows 10% per rank and 5% per skill level.
	pay := models.NormalizeAmount(job.BasePay * (1 + 0.10*float64(rec.JobRank)) * (1 + 0.05*float64(skill)))

	newBalance, err := applyLedgerDelta(ctx, uow, rec, pay, models.TransactionTypeWorkPay, map[string]any{
		"job":   rec.Job,
		"rank":  rec.JobRank,
		"skill": skill,
	})
	if err != nil {
		return nil, err
	}

	skill++
	rec.Skills[rec.Job] = skill
	rankedUp := skill%shiftsPerRank == 0
	if rankedUp {
		rec.JobRank++
	}
	rec.LastWorkDate = &now

	if err := uow.Balances().UpdateJob(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.WorkResult{
		Job:        rec.Job,
		Pay:        pay,
		NewBalance: newBalance,
		SkillLevel: skill,
		JobRank:    rec.JobRank,
		RankedUp:   rankedUp,
		NextShift:  now.Add(cooldown),
	}, nil
}
