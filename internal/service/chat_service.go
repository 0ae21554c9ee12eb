package service

import (
	"context"

	"iwacu/internal/domain"
	"iwacu/internal/events"
	"iwacu/internal/metrics"
	"iwacu/internal/models"
	"iwacu/internal/nlp"

	"github.com/rs/zerolog"
)

// ChatService chains the classifier and the composer for one incoming
// message. It never returns an error to its caller: anything
// unexpected degrades to a fixed apology reply with intent "error".
type ChatService struct {
	classifier *nlp.Classifier
	info       *InfoService
	eventBus   domain.EventPublisher
	logger     *zerolog.Logger
}

func NewChatService(classifier *nlp.Classifier, info *InfoService, eventBus domain.EventPublisher, logger *zerolog.Logger) *ChatService {
	return &ChatService{
		classifier: classifier,
		info:       info,
		eventBus:   eventBus,
		logger:     logger,
	}
}

func (s *ChatService) Chat(ctx context.Context, msg models.ChatMessage) (result models.ChatResult) {
	if msg.Sender == "" {
		msg.Sender = models.DefaultSender
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Interface("panic", r).Str("sender", msg.Sender).Msg("chat pipeline fault")
			result = models.ChatResult{
				Reply:  apologyReply,
				Intent: models.IntentError,
				Lang:   models.LangFR,
			}
		}
	}()

	s.publishConversation(events.EventConversationUser, msg.Text, map[string]string{"sender": msg.Sender})

	lang, intent := s.classifier.Classify(msg.Text)
	reply := Compose(intent, lang, s.replyContext(intent))

	s.publishConversation(events.EventConversationBot, reply, map[string]string{"intent": intent, "lang": lang})
	metrics.IncChat(intent, lang)

	s.logger.Debug().
		Str("sender", msg.Sender).
		Str("intent", intent).
		Str("lang", lang).
		Msg("chat handled")

	return models.ChatResult{Reply: reply, Intent: intent, Lang: lang}
}

// replyContext gathers only the data the intent needs, read fresh from
// the reference tables.
func (s *ChatService) replyContext(intent string) ReplyContext {
	var rctx ReplyContext
	switch intent {
	case models.IntentMenu:
		rctx.MenuItems = s.info.Menu()
	case models.IntentPromos:
		rctx.ActivePromos, _ = s.info.Promos()
	case models.IntentHoraires:
		rctx.TodayHours = s.info.TodayHours()
	}
	return rctx
}

func (s *ChatService) publishConversation(eventType, text string, attrs map[string]string) {
	if s.eventBus == nil {
		return
	}
	payload := events.ConversationEventPayload{
		Sender: attrs["sender"],
		Text:   text,
		Attrs:  attrs,
	}
	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Msg("publish conversation event")
	}
}
