package dispatch

import (
	"context"

	"github.com/sirupsen/logrus"
)

// ProcessFunc é o processamento executado para cada mensagem despachada
type ProcessFunc func(ctx context.Context, msg Message) error

// InlineDispatcher executa o processamento no próprio processo, em uma
// goroutine por mensagem. Usado em ambiente local, onde não há worker de
// lote; os erros são apenas logados porque o chamador não espera resultado.
type InlineDispatcher struct {
	process ProcessFunc
}

func NewInlineDispatcher(process ProcessFunc) *InlineDispatcher {
	return &InlineDispatcher{process: process}
}

func (d *InlineDispatcher) Dispatch(ctx context.Context, msg Message) error {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logrus.WithFields(logrus.Fields{
					"channel_type":  msg.ChannelType,
					"ad_account_id": msg.AdAccountID,
					"task_id":       msg.TaskID,
					"panic":         r,
				}).Error("Panic no processamento inline de relatório")
			}
		}()

		if err := d.process(context.WithoutCancel(ctx), msg); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"channel_type":  msg.ChannelType,
				"ad_account_id": msg.AdAccountID,
				"task_id":       msg.TaskID,
			}).Error("Erro no processamento inline de relatório")
		}
	}()

	return nil
}

func (d *InlineDispatcher) DispatchBatch(ctx context.Context, msgs []Message) error {
	for _, msg := range msgs {
		if err := d.Dispatch(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}
