package pipeline

import (
	"fmt"
	"strings"

	"github.com/Gunvolt24/wb_records/internal/domain"
)

// KeyProperty — специальное имя свойства: ключ сообщения.
const KeyProperty = "__KEY__"

// AttributeRule — правило отображения свойства сообщения в атрибут выходного юнита.
type AttributeRule struct {
	Attribute string
	Property  string
}

// AttributeMapping — упорядоченный набор правил.
type AttributeMapping []AttributeRule

// ParseAttributeMapping разбирает строку вида "prop,key=__KEY__".
// Элемент "name" означает атрибут name из свойства name; "attr=prop" — атрибут attr из свойства prop.
func ParseAttributeMapping(spec string) (AttributeMapping, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}

	var mapping AttributeMapping
	seen := make(map[string]struct{})
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		attr, prop := part, part
		if i := strings.Index(part, "="); i >= 0 {
			attr = strings.TrimSpace(part[:i])
			prop = strings.TrimSpace(part[i+1:])
		}
		if attr == "" || prop == "" {
			return nil, fmt.Errorf("invalid attribute mapping entry %q", part)
		}
		if _, dup := seen[attr]; dup {
			return nil, fmt.Errorf("duplicate attribute %q in mapping", attr)
		}
		seen[attr] = struct{}{}
		mapping = append(mapping, AttributeRule{Attribute: attr, Property: prop})
	}
	return mapping, nil
}

// Apply вычисляет атрибуты сообщения. Отсутствующие свойства не попадают в результат.
func (m AttributeMapping) Apply(msg *domain.Message) map[string]string {
	attrs := make(map[string]string, len(m))
	for _, rule := range m {
		if rule.Property == KeyProperty {
			if msg.HasKey {
				attrs[rule.Attribute] = msg.Key
			}
			continue
		}
		if v, ok := msg.Property(rule.Property); ok {
			attrs[rule.Attribute] = v
		}
	}
	return attrs
}

// String — обратное преобразование в строку конфигурации.
func (m AttributeMapping) String() string {
	parts := make([]string, 0, len(m))
	for _, rule := range m {
		if rule.Attribute == rule.Property {
			parts = append(parts, rule.Attribute)
			continue
		}
		parts = append(parts, rule.Attribute+"="+rule.Property)
	}
	return strings.Join(parts, ",")
}
