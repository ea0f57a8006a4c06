// Package protowire implementa encoding/decoding de mensagens no wire format
// do protobuf, sem código gerado. A aritmética de varint/tag fica com o
// pacote protowire oficial; aqui só acumulamos campos e dirigimos o cursor.
// Wire types: 0=Varint, 1=64bit, 2=LengthDelimited, 5=32bit
package protowire

import (
	"errors"
	"fmt"
	"math"

	pbwire "google.golang.org/protobuf/encoding/protowire"
)

// WireType constantes do protobuf.
const (
	WireVarint          = int(pbwire.VarintType)
	Wire64Bit           = int(pbwire.Fixed64Type)
	WireLengthDelimited = int(pbwire.BytesType)
	Wire32Bit           = int(pbwire.Fixed32Type)
)

// ---------- ENCODER ----------

// Encoder acumula bytes no formato protobuf.
// Campos com valor default do proto3 (zero, string vazia) não são
// serializados, exceto pelas variantes *Force.
type Encoder struct {
	buf []byte
}

// NewEncoder cria um encoder vazio.
func NewEncoder() *Encoder {
	return &Encoder{buf: make([]byte, 0, 256)}
}

// Bytes retorna o buffer serializado.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// Reset limpa o buffer para reutilização.
func (e *Encoder) Reset() {
	e.buf = e.buf[:0]
}

// EncodeVarint codifica um campo varint (int32, int64, bool, enum).
func (e *Encoder) EncodeVarint(fieldNum int, v int64) {
	if v == 0 {
		return
	}
	e.buf = pbwire.AppendTag(e.buf, pbwire.Number(fieldNum), pbwire.VarintType)
	e.buf = pbwire.AppendVarint(e.buf, uint64(v))
}

// EncodeBool codifica um campo bool (omitido quando false).
func (e *Encoder) EncodeBool(fieldNum int, v bool) {
	if !v {
		return
	}
	e.EncodeVarint(fieldNum, 1)
}

// EncodeString codifica uma string (omitida quando vazia).
func (e *Encoder) EncodeString(fieldNum int, v string) {
	if v == "" {
		return
	}
	e.buf = pbwire.AppendTag(e.buf, pbwire.Number(fieldNum), pbwire.BytesType)
	e.buf = pbwire.AppendString(e.buf, v)
}

// EncodeBytes codifica um campo de bytes (omitido quando vazio).
func (e *Encoder) EncodeBytes(fieldNum int, v []byte) {
	if len(v) == 0 {
		return
	}
	e.buf = pbwire.AppendTag(e.buf, pbwire.Number(fieldNum), pbwire.BytesType)
	e.buf = pbwire.AppendBytes(e.buf, v)
}

// EncodeSubmessage codifica uma submensagem (length-delimited).
func (e *Encoder) EncodeSubmessage(fieldNum int, sub []byte) {
	e.EncodeBytes(fieldNum, sub)
}

// EncodeFloat32 codifica um float32 como fixed32 (omitido quando zero).
func (e *Encoder) EncodeFloat32(fieldNum int, v float32) {
	if v == 0 {
		return
	}
	e.buf = pbwire.AppendTag(e.buf, pbwire.Number(fieldNum), pbwire.Fixed32Type)
	e.buf = pbwire.AppendFixed32(e.buf, math.Float32bits(v))
}

// EncodeVarintForce codifica um varint mesmo quando zero.
// Necessário quando o receptor distingue "ausente" de "zero" (ex.: chaves).
func (e *Encoder) EncodeVarintForce(fieldNum int, v int64) {
	e.buf = pbwire.AppendTag(e.buf, pbwire.Number(fieldNum), pbwire.VarintType)
	e.buf = pbwire.AppendVarint(e.buf, uint64(v))
}

// ---------- DECODER ----------

// Decoder lê campos protobuf de um buffer.
type Decoder struct {
	buf []byte
	pos int
}

// NewDecoder cria um decoder sobre um buffer.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// Done retorna true se não há mais bytes.
func (d *Decoder) Done() bool {
	return d.pos >= len(d.buf)
}

// ReadTag lê a próxima tag de campo. Retorna (fieldNum, wireType).
func (d *Decoder) ReadTag() (int, int, error) {
	num, typ, n := pbwire.ConsumeTag(d.buf[d.pos:])
	if n < 0 {
		return 0, 0, fmt.Errorf("protowire: tag inválida: %w", pbwire.ParseError(n))
	}
	d.pos += n
	return int(num), int(typ), nil
}

// ReadVarint lê um campo varint como int64.
func (d *Decoder) ReadVarint() (int64, error) {
	v, n := pbwire.ConsumeVarint(d.buf[d.pos:])
	if n < 0 {
		return 0, errors.New("protowire: varint truncado")
	}
	d.pos += n
	return int64(v), nil
}

// ReadBool lê um campo varint como bool.
func (d *Decoder) ReadBool() (bool, error) {
	v, err := d.ReadVarint()
	return v != 0, err
}

// ReadString lê um campo length-delimited como string.
func (d *Decoder) ReadString() (string, error) {
	v, n := pbwire.ConsumeString(d.buf[d.pos:])
	if n < 0 {
		return "", errors.New("protowire: string truncada")
	}
	d.pos += n
	return v, nil
}

// ReadBytes lê um campo length-delimited. O slice aponta para o buffer de
// entrada; copie se for reter.
func (d *Decoder) ReadBytes() ([]byte, error) {
	v, n := pbwire.ConsumeBytes(d.buf[d.pos:])
	if n < 0 {
		return nil, errors.New("protowire: bytes truncados")
	}
	d.pos += n
	return v, nil
}

// ReadFloat32 lê um campo fixed32 como float32.
func (d *Decoder) ReadFloat32() (float32, error) {
	v, n := pbwire.ConsumeFixed32(d.buf[d.pos:])
	if n < 0 {
		return 0, errors.New("protowire: fixed32 truncado")
	}
	d.pos += n
	return math.Float32frombits(v), nil
}

// SkipField pula um campo de tipo desconhecido, preservando compatibilidade
// com mensagens de versões mais novas.
func (d *Decoder) SkipField(wireType int) error {
	n := pbwire.ConsumeFieldValue(0, pbwire.Type(wireType), d.buf[d.pos:])
	if n < 0 {
		return fmt.Errorf("protowire: campo não pode ser pulado: %w", pbwire.ParseError(n))
	}
	d.pos += n
	return nil
}
