package postgres

import (
	"context"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/ledgerline/crm-intelligence-api/internal/domain"
	"github.com/ledgerline/crm-intelligence-api/internal/usecases/intelligence"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ChangesChannel é o canal de NOTIFY usado pelos triggers das tabelas observadas
const ChangesChannel = "crm_changes"

const (
	minReconnectInterval = 10 * time.Second
	maxReconnectInterval = time.Minute
	pingInterval         = 90 * time.Second
)

// ListenerFeed é o change feed sobre LISTEN/NOTIFY. Uma única conexão escuta o canal
// e os eventos são repassados às assinaturas interessadas na tabela alterada.
// Cada assinatura tem sua própria goroutine, então um handler lento não atrasa as demais.
type ListenerFeed struct {
	listener *pq.Listener

	mu   sync.RWMutex
	subs map[string]*listenerSubscription
}

type listenerSubscription struct {
	feed    *ListenerFeed
	channel string
	tables  map[string]struct{}
	handler intelligence.ChangeHandler

	// pending guarda no máximo um evento; o handler relê todos os agregados a cada evento
	pending chan domain.ChangeEvent
	done    chan struct{}
}

func NewListenerFeed(listener *pq.Listener) *ListenerFeed {
	return &ListenerFeed{
		listener: listener,
		subs:     make(map[string]*listenerSubscription),
	}
}

// Listen cria o pq.Listener para o DSN informado e começa a escutar o canal de alterações
func Listen(dsn string) (*ListenerFeed, error) {
	listener := pq.NewListener(dsn, minReconnectInterval, maxReconnectInterval, func(event pq.ListenerEventType, err error) {
		if err != nil {
			logrus.WithError(err).WithField("event", event).Warn("Evento na conexão de LISTEN")
		}
	})

	if err := listener.Listen(ChangesChannel); err != nil {
		_ = listener.Close()
		return nil, errors.Wrapf(err, "erro ao escutar o canal %s", ChangesChannel)
	}

	logrus.WithField("channel", ChangesChannel).Info("Escutando alterações do banco")

	return NewListenerFeed(listener), nil
}

// Run entrega as notificações até o contexto ser cancelado
func (f *ListenerFeed) Run(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case notification := <-f.listener.Notify:
			// nil indica reconexão; alterações do intervalo podem ter sido perdidas
			if notification == nil {
				logrus.Warn("Conexão de LISTEN restabelecida")
				f.dispatchAll()
				continue
			}
			f.handleNotification(notification.Extra)
		case <-ticker.C:
			go func() {
				if err := f.listener.Ping(); err != nil {
					logrus.WithError(err).Warn("Erro no ping da conexão de LISTEN")
				}
			}()
		}
	}
}

// Subscribe registra o handler para as tabelas informadas sob o nome de canal
func (f *ListenerFeed) Subscribe(_ context.Context, channel string, tables []string, handler intelligence.ChangeHandler) (intelligence.Subscription, error) {
	if channel == "" {
		return nil, errors.New("nome de canal vazio")
	}
	if handler == nil {
		return nil, errors.New("handler nulo")
	}

	sub := &listenerSubscription{
		feed:    f,
		channel: channel,
		tables:  make(map[string]struct{}, len(tables)),
		handler: handler,
		pending: make(chan domain.ChangeEvent, 1),
		done:    make(chan struct{}),
	}
	for _, table := range tables {
		sub.tables[table] = struct{}{}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.subs[channel]; exists {
		return nil, errors.Errorf("canal %s já possui assinatura", channel)
	}
	f.subs[channel] = sub

	go sub.run()

	return sub, nil
}

func (s *listenerSubscription) Unsubscribe() error {
	s.feed.mu.Lock()
	defer s.feed.mu.Unlock()

	if _, ok := s.feed.subs[s.channel]; !ok {
		return errors.Errorf("canal %s não possui assinatura", s.channel)
	}
	delete(s.feed.subs, s.channel)
	close(s.done)

	return nil
}

func (s *listenerSubscription) run() {
	for {
		select {
		case <-s.done:
			return
		case event := <-s.pending:
			s.handler(event)
		}
	}
}

// enqueue não bloqueia o loop do LISTEN; com um evento já pendente o novo é descartado
func (s *listenerSubscription) enqueue(event domain.ChangeEvent) {
	select {
	case s.pending <- event:
	default:
		logrus.WithFields(logrus.Fields{
			"channel": s.channel,
			"table":   event.Table,
		}).Debug("Atualização já pendente para a assinatura, evento agrupado")
	}
}

func (f *ListenerFeed) handleNotification(payload string) {
	var event domain.ChangeEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		logrus.WithError(err).WithField("payload", payload).Warn("Notificação de alteração inválida")
		return
	}

	if err := event.Validate(); err != nil {
		logrus.WithError(err).WithField("payload", payload).Warn("Notificação de alteração inválida")
		return
	}

	f.dispatch(event)
}

func (f *ListenerFeed) dispatch(event domain.ChangeEvent) {
	for _, sub := range f.matching(event.Table) {
		sub.enqueue(event)
	}
}

// dispatchAll avisa todas as assinaturas com um evento sintético por tabela
func (f *ListenerFeed) dispatchAll() {
	f.mu.RLock()
	subs := make([]*listenerSubscription, 0, len(f.subs))
	for _, sub := range f.subs {
		subs = append(subs, sub)
	}
	f.mu.RUnlock()

	for _, sub := range subs {
		for table := range sub.tables {
			sub.enqueue(domain.ChangeEvent{Table: table, Type: domain.ChangeUpdate})
			break
		}
	}
}

func (f *ListenerFeed) matching(table string) []*listenerSubscription {
	f.mu.RLock()
	defer f.mu.RUnlock()

	subs := make([]*listenerSubscription, 0, len(f.subs))
	for _, sub := range f.subs {
		if _, ok := sub.tables[table]; ok {
			subs = append(subs, sub)
		}
	}
	return subs
}

// Close encerra as assinaturas e a conexão de LISTEN
func (f *ListenerFeed) Close() error {
	f.mu.Lock()
	for channel, sub := range f.subs {
		close(sub.done)
		delete(f.subs, channel)
	}
	f.mu.Unlock()

	if f.listener == nil {
		return nil
	}
	return f.listener.Close()
}
