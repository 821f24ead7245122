package mqtt

import (
	"context"
	"encoding/json"

	fx "github.com/robotalks/perilink/pkg/framework"
	"github.com/robotalks/perilink/pkg/l1"
	"github.com/robotalks/perilink/pkg/l1/comm"
)

// Registrar implements l1.Registrar on MQTT. Metadata is retained on the
// meta topic while connected, and cleared by the will message otherwise.
type Registrar struct {
	Queue *Queue
	Info  l1.ControllerInfo

	meta      []byte
	registrar comm.Registrar
}

// NewRegistrar creates a Registrar.
func NewRegistrar(brokerURL string, info l1.ControllerInfo) (*Registrar, error) {
	meta, err := json.Marshal(&info.Meta)
	if err != nil {
		return nil, err
	}
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	opts.SetBinaryWill(topicPrefix+MetaTopic(info.Ref), nil, 1, true)
	if opts.ClientID == "" {
		opts.SetClientID("perilink:" + info.Ref.Name())
	}
	r := &Registrar{
		Queue: NewQueue(opts, topicPrefix),
		Info:  info,
		meta:  meta,
	}
	r.Queue.OnConnect = func(q *Queue) {
		q.PubWith(MetaTopic(r.Info.Ref), r.meta, 1, true)
	}
	r.registrar.Init(NewPacketReadWriter(r.Queue).ForController(info.Ref))
	return r, nil
}

// SendEvent implements l1.Registrar.
func (r *Registrar) SendEvent(ctx context.Context, msg fx.Message) error {
	return r.registrar.SendEvent(ctx, msg)
}

// AddToLoop implements LoopAdder.
func (r *Registrar) AddToLoop(loop *fx.Loop) {
	loop.Add(&r.registrar)
	loop.AddRunnable(r)
}

// Run implements Runnable.
func (r *Registrar) Run(ctx context.Context) error {
	token := r.Queue.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return err
	}
	<-ctx.Done()
	r.Queue.PubWith(MetaTopic(r.Info.Ref), nil, 1, true).Wait()
	r.Queue.Close()
	return ctx.Err()
}
