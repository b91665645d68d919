package dependency

import (
	"github.com/hilthontt/roomly/infrastructure/persistence/database"
	"github.com/hilthontt/roomly/infrastructure/persistence/repository"
	"go.opentelemetry.io/otel"
)

func (c *Container) initRepositories() {
	db := database.GetDb()
	tracer := otel.Tracer(c.Config.Jaeger.ServiceName + "/repository")

	c.UserRepo = repository.NewCachedUserRepository(
		repository.NewUserRepository(db, tracer),
		c.DistributedCache,
		c.Logger.Log,
	)
	c.RoomRepo = repository.NewRoomRepository(db, tracer)
	c.MembershipRepo = repository.NewMembershipRepository(db, tracer)
	c.BookingRepo = repository.NewBookingRepository(db, tracer)
	c.ParticipantRepo = repository.NewParticipantRepository(db, tracer)
	c.AuditLogRepo = repository.NewAuditLogRepository(db, tracer)
	c.Transactor = database.NewTransactor(db)

	c.Logger.Info("Repositories initialized successfully")
}
