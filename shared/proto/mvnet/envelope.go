// Package mvnet define o protocolo de sincronização de cena entre o servidor
// ModelVision e os viewers. Toda mensagem viaja dentro de um Envelope binário
// (protobuf wire format) num frame websocket.
package mvnet

import (
	"ModelVision/shared/pkg/protowire"
)

// EnvelopeType identifica a mensagem carregada no payload.
type EnvelopeType int32

const (
	EnvUnknown EnvelopeType = iota
	EnvServerStatus
	EnvSceneSnapshot
	EnvActorUpdate
	EnvActorRemove
	EnvClientRequestScene
	EnvPing
	EnvPong
)

// Envelope embrulha qualquer mensagem do protocolo com seu tipo.
type Envelope struct {
	Type    EnvelopeType
	Payload []byte
}

func (m *Envelope) Marshal() []byte {
	e := protowire.NewEncoder()
	e.EncodeVarint(1, int64(m.Type))
	e.EncodeBytes(2, m.Payload)
	return e.Bytes()
}

func (m *Envelope) Unmarshal(data []byte) error {
	d := protowire.NewDecoder(data)
	for !d.Done() {
		fieldNum, wireType, err := d.ReadTag()
		if err != nil {
			return err
		}
		switch fieldNum {
		case 1:
			v, err := d.ReadVarint()
			if err != nil {
				return err
			}
			m.Type = EnvelopeType(v)
		case 2:
			b, err := d.ReadBytes()
			if err != nil {
				return err
			}
			m.Payload = append([]byte(nil), b...)
		default:
			if err := d.SkipField(wireType); err != nil {
				return err
			}
		}
	}
	return nil
}

// Wrap serializa a mensagem e a embrulha num Envelope já serializado.
func Wrap(t EnvelopeType, msg interface{ Marshal() []byte }) []byte {
	env := Envelope{Type: t}
	if msg != nil {
		env.Payload = msg.Marshal()
	}
	return env.Marshal()
}
