// Package natsfeed implementa o change feed e a publicação de lembretes sobre NATS
package natsfeed

import (
	"context"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/ledgerline/crm-intelligence-api/internal/domain"
	"github.com/ledgerline/crm-intelligence-api/internal/usecases/intelligence"
	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SubjectPrefix é o prefixo dos assuntos de alteração, um por tabela
const SubjectPrefix = "changes."

const clientName = "crm-intelligence-api"

// Connect abre a conexão com o servidor NATS com reconexão automática
func Connect(url string) (*nats.Conn, error) {
	conn, err := nats.Connect(url,
		nats.Name(clientName),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logrus.WithError(err).Warn("Conexão com o NATS perdida")
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logrus.WithField("url", c.ConnectedUrl()).Info("Conexão com o NATS restabelecida")
		}),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao conectar no NATS em %s", url)
	}

	logrus.WithField("url", url).Info("Conectado ao NATS")

	return conn, nil
}

// Subject retorna o assunto de alterações da tabela
func Subject(table string) string {
	return SubjectPrefix + table
}

// Feed é o change feed sobre assuntos NATS changes.<tabela>
type Feed struct {
	conn *nats.Conn
}

func NewFeed(conn *nats.Conn) *Feed {
	return &Feed{conn: conn}
}

type subscription struct {
	channel string
	subs    []*nats.Subscription
}

// Subscribe assina o assunto de cada tabela. Se alguma assinatura falhar, as já criadas são canceladas.
func (f *Feed) Subscribe(_ context.Context, channel string, tables []string, handler intelligence.ChangeHandler) (intelligence.Subscription, error) {
	if handler == nil {
		return nil, errors.New("handler nulo")
	}

	sub := &subscription{channel: channel}

	for _, table := range tables {
		natsSub, err := f.conn.Subscribe(Subject(table), messageHandler(table, handler))
		if err != nil {
			_ = sub.Unsubscribe()
			return nil, errors.Wrapf(err, "erro ao assinar %s", Subject(table))
		}
		sub.subs = append(sub.subs, natsSub)
	}

	logrus.WithFields(logrus.Fields{
		"channel": channel,
		"tables":  tables,
	}).Debug("Assinatura NATS criada")

	return sub, nil
}

func (s *subscription) Unsubscribe() error {
	var firstErr error
	for _, natsSub := range s.subs {
		if err := natsSub.Unsubscribe(); err != nil && firstErr == nil {
			firstErr = errors.Wrapf(err, "erro ao cancelar assinatura %s", natsSub.Subject)
		}
	}
	s.subs = nil

	return firstErr
}

func messageHandler(table string, handler intelligence.ChangeHandler) nats.MsgHandler {
	return func(msg *nats.Msg) {
		event, err := decodeEvent(table, msg.Data)
		if err != nil {
			logrus.WithError(err).WithField("subject", msg.Subject).Warn("Mensagem de alteração inválida")
			return
		}
		handler(event)
	}
}

// decodeEvent decodifica a mensagem; a tabela vem do assunto quando ausente no corpo
func decodeEvent(table string, data []byte) (domain.ChangeEvent, error) {
	var event domain.ChangeEvent
	if len(data) > 0 {
		if err := json.Unmarshal(data, &event); err != nil {
			return domain.ChangeEvent{}, err
		}
	}

	if event.Table == "" {
		event.Table = table
	}
	if event.Table != table {
		return domain.ChangeEvent{}, errors.Errorf("tabela %q recebida no assunto de %q", event.Table, table)
	}

	if err := event.Validate(); err != nil {
		return domain.ChangeEvent{}, err
	}

	return event, nil
}
