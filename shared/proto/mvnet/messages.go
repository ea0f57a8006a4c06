package mvnet

import (
	"ModelVision/shared/pkg/protowire"
)

// EntryState é o vínculo de material de um slot, na forma que viaja na rede.
// Overrides de instância virtual viajam como cor resolvida: o viewer não
// precisa da cadeia asset base -> instância, só do resultado.
type EntryState struct {
	MaterialName  string
	Virtual       bool
	Visible       bool
	ShadowsMode   int32
	ReceiveDecals bool
	BaseColor     uint32 // RGBA empacotado, válido só quando HasColor
	HasColor      bool   // distingue override ausente de override (0,0,0,0)
}

func (m *EntryState) Marshal() []byte {
	e := protowire.NewEncoder()
	e.EncodeString(1, m.MaterialName)
	e.EncodeBool(2, m.Virtual)
	e.EncodeBool(3, m.Visible)
	e.EncodeVarint(4, int64(m.ShadowsMode))
	e.EncodeVarint(5, int64(m.BaseColor))
	e.EncodeBool(6, m.ReceiveDecals)
	e.EncodeBool(7, m.HasColor)
	return e.Bytes()
}

func (m *EntryState) Unmarshal(data []byte) error {
	d := protowire.NewDecoder(data)
	for !d.Done() {
		fieldNum, wireType, err := d.ReadTag()
		if err != nil {
			return err
		}
		switch fieldNum {
		case 1:
			if m.MaterialName, err = d.ReadString(); err != nil {
				return err
			}
		case 2:
			if m.Virtual, err = d.ReadBool(); err != nil {
				return err
			}
		case 3:
			if m.Visible, err = d.ReadBool(); err != nil {
				return err
			}
		case 4:
			v, err := d.ReadVarint()
			if err != nil {
				return err
			}
			m.ShadowsMode = int32(v)
		case 5:
			v, err := d.ReadVarint()
			if err != nil {
				return err
			}
			m.BaseColor = uint32(v)
		case 6:
			if m.ReceiveDecals, err = d.ReadBool(); err != nil {
				return err
			}
		case 7:
			if m.HasColor, err = d.ReadBool(); err != nil {
				return err
			}
		default:
			if err := d.SkipField(wireType); err != nil {
				return err
			}
		}
	}
	return nil
}

// ActorState é o estado completo de um ator registrado, usado tanto no
// snapshot inicial quanto nos updates incrementais.
type ActorState struct {
	Key        int32 // chave no registro do servidor; identidade do ator no viewer
	Name       string
	ModelToken string
	Layer      int32
	X, Y, Z    float32
	Entries    []EntryState
}

func (m *ActorState) Marshal() []byte {
	e := protowire.NewEncoder()
	e.EncodeVarintForce(1, int64(m.Key))
	e.EncodeString(2, m.Name)
	e.EncodeString(3, m.ModelToken)
	e.EncodeVarint(4, int64(m.Layer))
	e.EncodeFloat32(5, m.X)
	e.EncodeFloat32(6, m.Y)
	e.EncodeFloat32(7, m.Z)
	for i := range m.Entries {
		e.EncodeSubmessage(8, m.Entries[i].Marshal())
	}
	return e.Bytes()
}

func (m *ActorState) Unmarshal(data []byte) error {
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
			m.Key = int32(v)
		case 2:
			if m.Name, err = d.ReadString(); err != nil {
				return err
			}
		case 3:
			if m.ModelToken, err = d.ReadString(); err != nil {
				return err
			}
		case 4:
			v, err := d.ReadVarint()
			if err != nil {
				return err
			}
			m.Layer = int32(v)
		case 5:
			if m.X, err = d.ReadFloat32(); err != nil {
				return err
			}
		case 6:
			if m.Y, err = d.ReadFloat32(); err != nil {
				return err
			}
		case 7:
			if m.Z, err = d.ReadFloat32(); err != nil {
				return err
			}
		case 8:
			sub, err := d.ReadBytes()
			if err != nil {
				return err
			}
			var entry EntryState
			if err := entry.Unmarshal(sub); err != nil {
				return err
			}
			m.Entries = append(m.Entries, entry)
		default:
			if err := d.SkipField(wireType); err != nil {
				return err
			}
		}
	}
	return nil
}

// SceneSnapshot é o estado inteiro da cena, enviado na conexão do viewer.
type SceneSnapshot struct {
	SceneName string
	Actors    []ActorState
}

func (m *SceneSnapshot) Marshal() []byte {
	e := protowire.NewEncoder()
	e.EncodeString(1, m.SceneName)
	for i := range m.Actors {
		e.EncodeSubmessage(2, m.Actors[i].Marshal())
	}
	return e.Bytes()
}

func (m *SceneSnapshot) Unmarshal(data []byte) error {
	d := protowire.NewDecoder(data)
	for !d.Done() {
		fieldNum, wireType, err := d.ReadTag()
		if err != nil {
			return err
		}
		switch fieldNum {
		case 1:
			if m.SceneName, err = d.ReadString(); err != nil {
				return err
			}
		case 2:
			sub, err := d.ReadBytes()
			if err != nil {
				return err
			}
			var a ActorState
			if err := a.Unmarshal(sub); err != nil {
				return err
			}
			m.Actors = append(m.Actors, a)
		default:
			if err := d.SkipField(wireType); err != nil {
				return err
			}
		}
	}
	return nil
}

// ActorRemoveMessage remove um ator do viewer pela chave do servidor.
type ActorRemoveMessage struct {
	Key int32
}

func (m *ActorRemoveMessage) Marshal() []byte {
	e := protowire.NewEncoder()
	e.EncodeVarintForce(1, int64(m.Key))
	return e.Bytes()
}

func (m *ActorRemoveMessage) Unmarshal(data []byte) error {
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
			m.Key = int32(v)
		default:
			if err := d.SkipField(wireType); err != nil {
				return err
			}
		}
	}
	return nil
}

// ServerStatus informa o viewer sobre o estado do host.
type ServerStatus struct {
	Message    string
	SceneName  string
	ActorCount int32
}

func (m *ServerStatus) Marshal() []byte {
	e := protowire.NewEncoder()
	e.EncodeString(1, m.Message)
	e.EncodeString(2, m.SceneName)
	e.EncodeVarint(3, int64(m.ActorCount))
	return e.Bytes()
}

func (m *ServerStatus) Unmarshal(data []byte) error {
	d := protowire.NewDecoder(data)
	for !d.Done() {
		fieldNum, wireType, err := d.ReadTag()
		if err != nil {
			return err
		}
		switch fieldNum {
		case 1:
			if m.Message, err = d.ReadString(); err != nil {
				return err
			}
		case 2:
			if m.SceneName, err = d.ReadString(); err != nil {
				return err
			}
		case 3:
			v, err := d.ReadVarint()
			if err != nil {
				return err
			}
			m.ActorCount = int32(v)
		default:
			if err := d.SkipField(wireType); err != nil {
				return err
			}
		}
	}
	return nil
}

// ClientRequestScene pede o snapshot da cena ao servidor.
type ClientRequestScene struct {
	SceneName string
}

func (m *ClientRequestScene) Marshal() []byte {
	e := protowire.NewEncoder()
	e.EncodeString(1, m.SceneName)
	return e.Bytes()
}

func (m *ClientRequestScene) Unmarshal(data []byte) error {
	d := protowire.NewDecoder(data)
	for !d.Done() {
		fieldNum, wireType, err := d.ReadTag()
		if err != nil {
			return err
		}
		switch fieldNum {
		case 1:
			if m.SceneName, err = d.ReadString(); err != nil {
				return err
			}
		default:
			if err := d.SkipField(wireType); err != nil {
				return err
			}
		}
	}
	return nil
}

// PackColor empacota RGBA em um uint32 (R nos bits altos).
func PackColor(c [4]uint8) uint32 {
	return uint32(c[0])<<24 | uint32(c[1])<<16 | uint32(c[2])<<8 | uint32(c[3])
}

// UnpackColor desfaz PackColor.
func UnpackColor(v uint32) [4]uint8 {
	return [4]uint8{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}
}
