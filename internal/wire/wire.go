// Package wire provides dependency injection for the tpm application.
// It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"sync"

	"github.com/example/tpm/internal/adapters/sqlite"
	"github.com/example/tpm/internal/app"
	"github.com/example/tpm/internal/db"
	"github.com/example/tpm/internal/interchange"
	"github.com/example/tpm/internal/ports/primary"
)

var (
	orgService     primary.OrgService
	projectService primary.ProjectService
	ticketService  primary.TicketService
	taskService    primary.TaskService
	noteService    primary.NoteService
	roadmapService primary.RoadmapService
	exporter       *interchange.Exporter
	importer       *interchange.Importer
	once           sync.Once
)

// OrgService returns the singleton OrgService instance.
func OrgService() primary.OrgService {
	once.Do(initServices)
	return orgService
}

// ProjectService returns the singleton ProjectService instance.
func ProjectService() primary.ProjectService {
	once.Do(initServices)
	return projectService
}

// TicketService returns the singleton TicketService instance.
func TicketService() primary.TicketService {
	once.Do(initServices)
	return ticketService
}

// TaskService returns the singleton TaskService instance.
func TaskService() primary.TaskService {
	once.Do(initServices)
	return taskService
}

// NoteService returns the singleton NoteService instance.
func NoteService() primary.NoteService {
	once.Do(initServices)
	return noteService
}

// RoadmapService returns the singleton RoadmapService instance.
func RoadmapService() primary.RoadmapService {
	once.Do(initServices)
	return roadmapService
}

// Exporter returns the singleton bundle Exporter instance.
func Exporter() *interchange.Exporter {
	once.Do(initServices)
	return exporter
}

// Importer returns the singleton bundle Importer instance.
func Importer() *interchange.Importer {
	once.Do(initServices)
	return importer
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Repository adapters (secondary ports)
	orgRepo := sqlite.NewOrgRepository(database)
	projectRepo := sqlite.NewProjectRepository(database)
	ticketRepo := sqlite.NewTicketRepository(database)
	taskRepo := sqlite.NewTaskRepository(database)
	noteRepo := sqlite.NewNoteRepository(database)

	// Services (primary ports implementation)
	orgService = app.NewOrgService(orgRepo)
	projectService = app.NewProjectService(projectRepo, orgRepo)
	ticketService = app.NewTicketService(ticketRepo, projectRepo)
	taskService = app.NewTaskService(taskRepo, ticketRepo)
	noteService = app.NewNoteService(noteRepo)
	roadmapService = app.NewRoadmapService(orgRepo, projectRepo, ticketRepo, taskRepo)

	exporter = interchange.NewExporter(orgRepo, projectRepo, ticketRepo, taskRepo, noteRepo)
	importer = interchange.NewImporter(
		orgService, projectService, ticketService, taskService,
		orgRepo, projectRepo, ticketRepo, taskRepo, noteRepo,
	)
}
