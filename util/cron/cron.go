package cron

import (
	"context"

	"comments-contract/logger"

	"github.com/robfig/cron"
)

type Handler func(ctx context.Context) error

type ErrHandler func(name string, err error)

func DefaultErrHandler(name string, err error) {
	if err != nil {
		logger.Logger.Errorf("run task: %s err: %v", name, err)
	}
}

type task struct {
	name       string
	spec       string
	handler    Handler
	errHandler ErrHandler
}

// Cron runs every registered task on one scheduler.
type Cron struct {
	tasks []task
	cron  *cron.Cron
}

func NewCron() *Cron {
	return &Cron{
		tasks: make([]task, 0),
		cron:  cron.New(),
	}
}

// Register adds a task; the first errHandler, if any, replaces the default one.
func (c *Cron) Register(name, spec string, handler Handler, errHandlers ...ErrHandler) {
	errHandler := DefaultErrHandler
	if len(errHandlers) > 0 {
		errHandler = errHandlers[0]
	}
	t := task{
		name:       name,
		spec:       spec,
		handler:    handler,
		errHandler: errHandler,
	}
	if err := c.cron.AddFunc(spec, func() { c.run(t) }); err != nil {
		logger.Logger.Fatalf("[cron] job.AddFunc err, name: %s, err: %v", name, err)
	}
	c.tasks = append(c.tasks, t)
}

func (c *Cron) run(t task) {
	logger.Logger.Infof("[cron] run task: %s", t.name)
	if err := t.handler(context.Background()); err != nil {
		t.errHandler(t.name, err)
	}
	logger.Logger.Infof("[cron] run task end: %s", t.name)
}

// RunNow executes every task once, outside the schedule.
func (c *Cron) RunNow() {
	for _, t := range c.tasks {
		c.run(t)
	}
}

func (c *Cron) Start() {
	c.cron.Start()
}

func (c *Cron) Stop() {
	c.cron.Stop()
}
