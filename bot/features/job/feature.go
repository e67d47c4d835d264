package job

import (
	"github.com/Hiroshi025/Nebura-sub000/bot"
	"github.com/Hiroshi025/Nebura-sub000/service"
)

type Feature struct {
	jobs service.JobService
}

func New(jobs service.JobService) *Feature {
	return &Feature{jobs: jobs}
}

func (f *Feature) Register(reg *bot.Registry) {
	reg.MustRegister(&bot.Command{
		Name:        "job",
		Aliases:     []string{"jobs"},
		Description: "List jobs, join one or quit",
		Run:         f.handleJob,
	})
	reg.MustRegister(&bot.Command{
		Name:        "work",
		Description: "Work a shift at your job",
		Run:         f.handleWork,
	})
}
