package intelligence

import (
	"context"
	"fmt"
	"sync"

	"github.com/ledgerline/crm-intelligence-api/internal/domain"
	"github.com/ledgerline/crm-intelligence-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// WatchedTables são as tabelas cujas alterações invalidam os agregados
var WatchedTables = []string{domain.TableVouchers, domain.TableCRMGoals}

// refresher é a parte do Service usada pela invalidação
type refresher interface {
	TenantID() string
	FetchBusinessPulse(ctx context.Context) error
	FetchGoalProgress(ctx context.Context, year int) (*domain.GoalProgress, error)
}

// Invalidator mantém uma assinatura no change feed para o ano observado e
// busca novamente os agregados a cada alteração, sem comparar o conteúdo do evento
type Invalidator struct {
	ctx    context.Context
	feed   ChangeFeed
	target refresher

	mu      sync.Mutex
	year    int
	channel string
	sub     Subscription
}

// NewInvalidator cria o invalidador; ctx é usado nas buscas disparadas pelos eventos
func NewInvalidator(ctx context.Context, feed ChangeFeed, target refresher) *Invalidator {
	return &Invalidator{
		ctx:    ctx,
		feed:   feed,
		target: target,
	}
}

// Watch passa a observar o ano informado. Se já havia assinatura para outro ano,
// ela é cancelada antes da nova ser criada.
func (i *Invalidator) Watch(year int) error {
	if year <= 0 {
		return ErrInvalidYear
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if i.sub != nil && i.year == year {
		return nil
	}

	i.unsubscribeLocked()

	channel, err := channelName(i.target.TenantID(), year)
	if err != nil {
		return err
	}

	sub, err := i.feed.Subscribe(i.ctx, channel, WatchedTables, i.handler(channel, year))
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"tenant_id": i.target.TenantID(),
			"year":      year,
		}).Error("Erro ao assinar o change feed")
		return err
	}

	i.sub = sub
	i.year = year
	i.channel = channel

	logrus.WithFields(logrus.Fields{
		"tenant_id": i.target.TenantID(),
		"year":      year,
		"channel":   channel,
	}).Info("Assinatura de invalidação em tempo real criada")

	return nil
}

// Year retorna o ano observado no momento (0 quando não há assinatura)
func (i *Invalidator) Year() int {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.sub == nil {
		return 0
	}
	return i.year
}

// Close cancela a assinatura ativa
func (i *Invalidator) Close() {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.unsubscribeLocked()
}

func (i *Invalidator) unsubscribeLocked() {
	if i.sub == nil {
		return
	}

	if err := i.sub.Unsubscribe(); err != nil {
		logrus.WithError(err).WithField("channel", i.channel).Warn("Erro ao cancelar assinatura do change feed")
	}

	i.sub = nil
	i.channel = ""
	i.year = 0
}

// handler descarta eventos de assinaturas já substituídas e de outros tenants
func (i *Invalidator) handler(channel string, year int) ChangeHandler {
	return func(event domain.ChangeEvent) {
		i.mu.Lock()
		active := i.channel == channel
		i.mu.Unlock()

		if !active {
			return
		}

		if event.TenantID != "" && event.TenantID != i.target.TenantID() {
			return
		}

		changeEvents.WithLabelValues(event.Table).Inc()

		logrus.WithFields(logrus.Fields{
			"tenant_id": i.target.TenantID(),
			"table":     event.Table,
			"type":      event.Type,
			"year":      year,
		}).Debug("Alteração recebida, atualizando agregados")

		if err := i.target.FetchBusinessPulse(i.ctx); err != nil {
			logrus.WithError(err).Warn("Erro ao atualizar agregados após alteração")
		}

		if _, err := i.target.FetchGoalProgress(i.ctx, year); err != nil {
			logrus.WithError(err).Warn("Erro ao atualizar meta anual após alteração")
		}
	}
}

func channelName(tenantID string, year int) (string, error) {
	suffix, err := utils.GenerateID(utils.ChannelSuffixSize)
	if err != nil {
		return "", fmt.Errorf("erro ao gerar nome do canal: %w", err)
	}
	return fmt.Sprintf("crm-intelligence-%s-%d-%s", tenantID, year, suffix), nil
}
