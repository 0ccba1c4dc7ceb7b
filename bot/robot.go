package bot

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/michalplat/panibiblia/robot"
)

/* robot.go defines the methods on struct Robot used by plugins and jobs. */

// Robot is handed to a plugin or job for one invocation. It carries a copy
// of the robot.Message, so plugins can modify it (e.g. with Direct()) without
// affecting the message that triggered them.
type Robot struct {
	*robot.Message
	id         string          // uuid of the invocation, for the log
	ctx        context.Context // canceled when the robot stops
	taskName   string          // plugin or job name
	taskConfig interface{}     // decoded Config section, nil if none
	cfg        *configuration  // convenience, the configuration at dispatch time
}

func newRobot(cfg *configuration, msg *robot.Message, name string, config interface{}) Robot {
	m := *msg
	return Robot{
		Message:    &m,
		id:         uuid.NewString(),
		ctx:        baseContext(),
		taskName:   name,
		taskConfig: config,
		cfg:        cfg,
	}
}

// see robot/robot.go
func (r Robot) CheckAdmin() bool {
	for _, adminUser := range r.cfg.adminUsers {
		if r.User == adminUser {
			return true
		}
	}
	return false
}

// see robot/robot.go
func (r Robot) GetMessage() *robot.Message {
	m := *r.Message
	return &m
}

// see robot/robot.go
func (r Robot) Context() context.Context {
	return r.ctx
}

// see robot/robot.go
func (r Robot) InvocationID() string {
	return r.id
}

// see robot/robot.go
func (r Robot) Fixed() robot.Robot {
	nr := r
	m := *r.Message
	nr.Message = &m
	nr.Format = robot.Fixed
	return nr
}

// see robot/robot.go
func (r Robot) MessageFormat(f robot.MessageFormat) robot.Robot {
	nr := r
	m := *r.Message
	nr.Message = &m
	nr.Format = f
	return nr
}

// see robot/robot.go
func (r Robot) Direct() robot.Robot {
	nr := r
	m := *r.Message
	nr.Message = &m
	nr.Channel = ""
	nr.ProtocolChannel = ""
	return nr
}

// see robot/robot.go
func (r Robot) Pause(s float64) {
	ms := time.Duration(s * float64(1000))
	select {
	case <-time.After(ms * time.Millisecond):
	case <-r.ctx.Done():
	}
}

// see robot/robot.go
func (r Robot) GetBotAttribute(a string) *robot.AttrRet {
	a = strings.ToLower(a)
	ret := robot.Ok
	var attr string
	switch a {
	case "name":
		attr = r.cfg.botinfo.UserName
	case "fullname", "realname":
		attr = r.cfg.botinfo.FullName
	case "alias":
		if r.cfg.alias != 0 {
			attr = string(r.cfg.alias)
		}
	case "contact", "admin", "admincontact":
		attr = r.cfg.adminContact
	case "protocol":
		attr = r.Protocol.String()
	case "id", "internalid", "protocolid":
		currentCfg.RLock()
		attr = bracket(currentCfg.botinfo.UserID)
		currentCfg.RUnlock()
	default:
		ret = robot.AttributeNotFound
	}
	return &robot.AttrRet{Attribute: attr, RetVal: ret}
}

// see robot/robot.go
func (r Robot) GetTaskConfig(dptr interface{}) robot.RetVal {
	if r.taskConfig == nil {
		Log(robot.Error, "Task \"%s\" called GetTaskConfig, but no config was found.", r.taskName)
		return robot.NoConfigFound
	}
	tp := reflect.ValueOf(dptr)
	if tp.Kind() != reflect.Ptr {
		Log(robot.Error, "Task \"%s\" called GetTaskConfig, but didn't pass a double-pointer to a struct", r.taskName)
		return robot.InvalidDblPtr
	}
	p := reflect.Indirect(tp)
	if p.Kind() != reflect.Ptr {
		Log(robot.Error, "Task \"%s\" called GetTaskConfig, but didn't pass a double-pointer to a struct", r.taskName)
		return robot.InvalidDblPtr
	}
	if p.Type() != reflect.ValueOf(r.taskConfig).Type() {
		Log(robot.Error, "Task \"%s\" called GetTaskConfig with an invalid double-pointer", r.taskName)
		return robot.InvalidCfgStruct
	}
	p.Set(reflect.ValueOf(r.taskConfig))
	return robot.Ok
}

// see robot/robot.go
func (r Robot) Log(l robot.LogLevel, msg string, v ...interface{}) (logged bool) {
	if len(v) > 0 {
		msg = fmt.Sprintf(msg, v...)
	}
	return Log(l, fmt.Sprintf("%s[%s]: %s", r.taskName, shortID(r.id), msg))
}

// shortID returns the first block of a uuid.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
