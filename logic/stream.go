package logic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/jsreddy3/persona-backend/models"
)

// streamState tracks one request→completion→stream cycle.
type streamState int

const (
	stateValidating streamState = iota
	stateReserving
	stateGenerating
	statePersisting
	stateClosed
	stateAborted
)

func (s streamState) String() string {
	switch s {
	case stateValidating:
		return "validating"
	case stateReserving:
		return "reserving"
	case stateGenerating:
		return "generating"
	case statePersisting:
		return "persisting"
	case stateClosed:
		return "closed"
	case stateAborted:
		return "aborted"
	}
	return "unknown"
}

// StreamLogic orchestrates one message exchange: validate, reserve credits,
// persist the user message, drive the completion stream and settle.
type StreamLogic struct {
	convoDAO     ConversationStore
	messageDAO   MessageStore
	characterDAO CharacterStore
	ledger       *CreditLedger
	prompts      *PromptAssembler
	provider     CompletionProvider
	messageCost  int64
}

func NewStreamLogic(
	convoDAO ConversationStore,
	messageDAO MessageStore,
	characterDAO CharacterStore,
	ledger *CreditLedger,
	prompts *PromptAssembler,
	provider CompletionProvider,
	messageCost int64,
) *StreamLogic {
	return &StreamLogic{
		convoDAO:     convoDAO,
		messageDAO:   messageDAO,
		characterDAO: characterDAO,
		ledger:       ledger,
		prompts:      prompts,
		provider:     provider,
		messageCost:  messageCost,
	}
}

// streamSession is the per-request state machine. Not restartable.
type streamSession struct {
	logic          *StreamLogic
	ctx            context.Context
	conversationID uuid.UUID
	userID         uint64
	content        string
	onToken        func(string) error // nil for non-streaming delivery

	state       streamState
	convo       *models.Conversation
	character   *models.Character
	history     []models.Message
	reservation *Reservation
	delivered   int // chunks that actually reached the client
	response    strings.Builder
}

func (s *streamSession) transition(next streamState) {
	log.Debug().
		Str("conversation_id", s.conversationID.String()).
		Str("from", s.state.String()).
		Str("to", next.String()).
		Msg("stream session transition")
	s.state = next
}

// StreamMessage runs the full pipeline for one user message, forwarding
// assistant tokens to onToken as they arrive. It returns the persisted user
// and assistant messages. On an abort after partial output the partial
// assistant message is persisted and the reservation committed; with no
// output the reservation is released in full. The reservation is always
// resolved before return.
func (l *StreamLogic) StreamMessage(
	ctx context.Context,
	conversationID uuid.UUID,
	userID uint64,
	content string,
	onToken func(chunk string) error,
) (*models.Message, *models.Message, error) {
	s := &streamSession{
		logic:          l,
		ctx:            ctx,
		conversationID: conversationID,
		userID:         userID,
		content:        content,
		onToken:        onToken,
		state:          stateValidating,
	}
	userMsg, answer, err := s.run()
	if s.reservation != nil && !s.reservation.Resolved() {
		// Must never happen: every exit path settles the reservation.
		log.Error().Uint64("user_id", userID).Msg("unresolved credit reservation at session end")
		l.ledger.Release(s.reservation)
	}
	return userMsg, answer, err
}

// SendMessage runs the same pipeline without incremental delivery and
// returns the user and assistant messages once generation completes. Since
// no output reaches the client before the final response, any provider
// failure releases the reservation in full.
func (l *StreamLogic) SendMessage(ctx context.Context, conversationID uuid.UUID, userID uint64, content string) (*models.Message, *models.Message, error) {
	return l.StreamMessage(ctx, conversationID, userID, content, nil)
}

func (s *streamSession) run() (*models.Message, *models.Message, error) {
	if err := s.validate(); err != nil {
		s.transition(stateAborted)
		return nil, nil, err
	}

	s.transition(stateReserving)
	reservation, err := s.logic.ledger.Reserve(s.userID, s.logic.messageCost)
	if err != nil {
		s.transition(stateAborted)
		return nil, nil, err
	}
	s.reservation = reservation

	s.transition(stateGenerating)
	userMsg, err := s.logic.messageDAO.AppendMessage(s.conversationID, models.RoleUser, s.content)
	if err != nil {
		s.logic.ledger.Release(s.reservation)
		s.transition(stateAborted)
		return nil, nil, err
	}

	streamErr := s.generate()
	if streamErr != nil {
		answer := s.abort(streamErr)
		return userMsg, answer, fmt.Errorf("%w: %v", ErrProviderFailure, streamErr)
	}

	s.transition(statePersisting)
	answer, err := s.logic.messageDAO.AppendMessage(s.conversationID, models.RoleAssistant, s.response.String())
	if err != nil {
		// The output already reached the client; the charge stands.
		s.logic.ledger.Commit(s.reservation)
		s.transition(stateAborted)
		return userMsg, nil, err
	}
	if err := s.logic.characterDAO.IncrementMessages(s.character.ID); err != nil {
		log.Warn().Err(err).Uint64("character_id", s.character.ID).Msg("failed to bump message counter")
	}
	s.logic.ledger.Commit(s.reservation)
	s.transition(stateClosed)
	return userMsg, answer, nil
}

// validate resolves the conversation with ownership check and loads the
// character and prior history.
func (s *streamSession) validate() error {
	if strings.TrimSpace(s.content) == "" {
		return fmt.Errorf("%w: message content is required", ErrValidation)
	}

	convo, err := s.logic.convoDAO.GetConversationByID(s.conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: conversation %s", ErrNotFound, s.conversationID)
		}
		return err
	}
	if convo.UserID != s.userID {
		return fmt.Errorf("%w: conversation %s", ErrForbidden, s.conversationID)
	}
	s.convo = convo

	character, err := s.logic.characterDAO.GetCharacterByID(convo.CharacterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: character %d", ErrNotFound, convo.CharacterID)
		}
		return err
	}
	s.character = character

	history, err := s.logic.messageDAO.GetMessagesByConversationID(s.conversationID)
	if err != nil {
		return err
	}
	s.history = history
	return nil
}

// generate opens the completion stream and forwards chunks in arrival
// order. Client disconnects cancel the provider call through ctx.
func (s *streamSession) generate() error {
	systemPrompt := s.logic.prompts.Build(s.character, s.convo.Language)
	history := append(s.history, models.Message{Role: models.RoleUser, Content: s.content})

	err := s.logic.provider.StreamCompletion(s.ctx, systemPrompt, history, func(chunk string) error {
		// Buffer only chunks the client actually received, so a partial
		// persist matches what was delivered.
		if s.onToken != nil {
			if err := s.onToken(chunk); err != nil {
				return err
			}
			s.delivered++
		}
		s.response.WriteString(chunk)
		return nil
	})
	if err == nil {
		err = s.ctx.Err()
	}
	return err
}

// abort settles a failed generation. If any output reached the client the
// partial assistant message is persisted and the user charged; otherwise
// the reservation is released in full. Returns the partial message, if any.
func (s *streamSession) abort(cause error) *models.Message {
	defer s.transition(stateAborted)

	if s.delivered == 0 {
		log.Info().Err(cause).
			Str("conversation_id", s.conversationID.String()).
			Msg("generation failed before any output, releasing reservation")
		s.logic.ledger.Release(s.reservation)
		return nil
	}

	log.Info().Err(cause).
		Str("conversation_id", s.conversationID.String()).
		Int("chunks_delivered", s.delivered).
		Msg("generation interrupted after partial output, committing reservation")
	answer, err := s.logic.messageDAO.AppendMessage(s.conversationID, models.RoleAssistant, s.response.String())
	if err != nil {
		log.Error().Err(err).
			Str("conversation_id", s.conversationID.String()).
			Msg("failed to persist partial assistant message")
	}
	s.logic.ledger.Commit(s.reservation)
	return answer
}
