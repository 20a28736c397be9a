package handler

import (
	"classroom/internal/app/classroom"
	"classroom/internal/app/live"
	"classroom/internal/configs"
)

type AppDeps struct {
	Classroom *classroom.Classroom
	Hub       *live.Hub
	Config    *configs.AppConfig
}
