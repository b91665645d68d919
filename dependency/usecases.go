package dependency

import (
	"github.com/hilthontt/roomly/application/usecases/access"
	authUseCase "github.com/hilthontt/roomly/application/usecases/auth"
	bookingUseCase "github.com/hilthontt/roomly/application/usecases/booking"
	"github.com/hilthontt/roomly/application/usecases/cleanup"
	participantUseCase "github.com/hilthontt/roomly/application/usecases/participant"
	roomUseCase "github.com/hilthontt/roomly/application/usecases/room"
	"github.com/hilthontt/roomly/infrastructure/security"
	"golang.org/x/crypto/bcrypt"
)

func (c *Container) initUseCases() {
	c.Gate = access.NewGate(c.MembershipRepo)
	c.Sweeper = cleanup.NewSweeper(c.ParticipantRepo, c.Clock, c.EventPublisher, c.MetricsManager, c.Logger)

	c.AuthUC = authUseCase.NewAuthUseCase(
		c.UserRepo,
		security.NewBcryptHasher(bcrypt.DefaultCost),
		security.NewJWTManager(c.Config.Auth.JwtSecret, c.Config.Auth.TokenTTL, c.Clock),
		c.Logger,
	)
	c.RoomUC = roomUseCase.NewRoomUseCase(
		c.RoomRepo, c.MembershipRepo, c.UserRepo, c.Transactor,
		c.Gate, c.Sweeper, c.EventPublisher, c.Logger,
	)
	c.BookingUC = bookingUseCase.NewBookingUseCase(
		c.BookingRepo, c.ParticipantRepo, c.RoomRepo, c.Transactor,
		c.Gate, c.Sweeper, c.Clock, c.EventPublisher, c.Logger,
	)
	c.ParticipantUC = participantUseCase.NewParticipantUseCase(
		c.ParticipantRepo, c.BookingRepo, c.Transactor,
		c.Gate, c.Sweeper, c.Clock, c.EventPublisher, c.Logger,
	)

	c.Logger.Info("Use cases initialized successfully")
}
