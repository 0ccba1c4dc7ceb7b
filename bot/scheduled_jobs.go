package bot

import (
	"sync"
	"time"

	"github.com/robfig/cron"

	"github.com/michalplat/panibiblia/robot"
)

var taskRunner *cron.Cron
var schedMutex sync.Mutex

func scheduleJobs(cfg *configuration) {
	schedMutex.Lock()
	defer schedMutex.Unlock()
	if taskRunner != nil {
		taskRunner.Stop()
	}
	if cfg.timeZone != nil {
		Log(robot.Info, "Scheduling jobs in TimeZone: %s", cfg.timeZone)
		taskRunner = cron.NewWithLocation(cfg.timeZone)
	} else {
		Log(robot.Info, "Scheduling jobs in system default timezone")
		taskRunner = cron.New()
	}
	pluginlist.RLock()
	jobs := pluginlist.jobs
	pluginlist.RUnlock()
	for _, st := range cfg.scheduledJobs {
		job, ok := jobs[st.Name]
		if !ok {
			Log(robot.Error, "Job not found when scheduling job: %s", st.Name)
			continue
		}
		if len(job.Channel) == 0 {
			Log(robot.Error, "Not scheduling job '%s'; zero-length Channel", st.Name)
			continue
		}
		st := st
		Log(robot.Info, "Scheduling job '%s', args '%v' with schedule: %s", st.Name, st.Arguments, st.Schedule)
		if err := taskRunner.AddFunc(st.Schedule, func() { runJob(cfg, job, st.Arguments...) }); err != nil {
			Log(robot.Error, "Invalid schedule '%s' for job '%s': %v", st.Schedule, st.Name, err)
		}
	}
	taskRunner.Start()
}

func stopJobs() {
	schedMutex.Lock()
	if taskRunner != nil {
		taskRunner.Stop()
	}
	schedMutex.Unlock()
}

// runJob runs a job in the job's channel, as the robot.
func runJob(cfg *configuration, job *Job, args ...string) {
	pluginsRunning.Lock()
	if pluginsRunning.shuttingDown {
		pluginsRunning.Unlock()
		Log(robot.Debug, "Not starting job '%s', robot is shutting down", job.name)
		return
	}
	pluginsRunning.Add(1)
	pluginsRunning.Unlock()
	defer pluginsRunning.Done()

	r := newRobot(cfg, &robot.Message{
		User:     cfg.botinfo.UserName,
		Channel:  job.Channel,
		Protocol: robot.ProtocolFromString(cfg.protocol),
		Format:   cfg.defaultMessageFormat,
	}, job.name, job.config)
	r.Log(robot.Info, "Starting scheduled job with args %q", args)
	start := time.Now()
	ret := callHandler(r, func() robot.TaskRetVal {
		return job.handler.Handler(r, args...)
	})
	r.Log(robot.Info, "Job finished in %s with status %s", time.Since(start).Round(time.Millisecond), ret)
}
