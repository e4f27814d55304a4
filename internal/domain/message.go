package domain

// SchemaInfo — схема, переданная брокером вместе с сообщением.
// Format задаёт кодировку определения (avro, json, protobuf ...).
type SchemaInfo struct {
	Format     string
	Definition []byte
}

// Message — сообщение, полученное из топика.
// Принадлежит клиенту брокера; пайплайн держит ссылку только на время обработки батча.
type Message struct {
	Topic      string
	Partition  int
	Offset     int64
	Key        string
	HasKey     bool
	Value      []byte
	Properties map[string]string
	Schema     *SchemaInfo

	// Sequence — порядковый номер получения внутри клиента (нужен для кумулятивного ack).
	Sequence uint64
}

// Property — значение свойства сообщения; (value, false), если свойства нет.
func (m *Message) Property(name string) (string, bool) {
	if m == nil || m.Properties == nil {
		return "", false
	}
	v, ok := m.Properties[name]
	return v, ok
}
