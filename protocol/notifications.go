package protocol

import "google.golang.org/protobuf/encoding/protowire"

// CMsgClientUserNotifications_Notification is one notification counter.
type CMsgClientUserNotifications_Notification struct {
	UserNotificationType *uint32 // 1
	Count                *uint32 // 2
}

func (m *CMsgClientUserNotifications_Notification) GetUserNotificationType() uint32 {
	if m != nil && m.UserNotificationType != nil {
		return *m.UserNotificationType
	}
	return 0
}

func (m *CMsgClientUserNotifications_Notification) GetCount() uint32 {
	if m != nil && m.Count != nil {
		return *m.Count
	}
	return 0
}

func (m *CMsgClientUserNotifications_Notification) appendTo(b []byte) []byte {
	if m.UserNotificationType != nil {
		b = appendVarint(b, 1, uint64(*m.UserNotificationType))
	}
	if m.Count != nil {
		b = appendVarint(b, 2, uint64(*m.Count))
	}
	return b
}

func (m *CMsgClientUserNotifications_Notification) decodeFrom(b []byte) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return protowire.ParseError(tagLen)
		}
		b = b[tagLen:]

		var n int
		switch {
		case num == 1 && typ == protowire.VarintType:
			m.UserNotificationType, n = consumeVarintU32(b)
		case num == 2 && typ == protowire.VarintType:
			m.Count, n = consumeVarintU32(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
	}
	return nil
}

// CMsgClientUserNotifications is the server push of pending notification counts.
type CMsgClientUserNotifications struct {
	Notifications []*CMsgClientUserNotifications_Notification // 1, repeated
}

func (m *CMsgClientUserNotifications) GetNotifications() []*CMsgClientUserNotifications_Notification {
	if m != nil {
		return m.Notifications
	}
	return nil
}

func (m *CMsgClientUserNotifications) appendTo(b []byte) []byte {
	for _, v := range m.Notifications {
		b = appendMessage(b, 1, v)
	}
	return b
}

func (m *CMsgClientUserNotifications) decodeFrom(b []byte) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return protowire.ParseError(tagLen)
		}
		b = b[tagLen:]

		var n int
		switch {
		case num == 1 && typ == protowire.BytesType:
			v := &CMsgClientUserNotifications_Notification{}
			nn, err := consumeMessage(b, v)
			if err != nil {
				return err
			}
			m.Notifications = append(m.Notifications, v)
			n = nn
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
	}
	return nil
}

// CMsgClientItemAnnouncements is the server push of the new-item count.
type CMsgClientItemAnnouncements struct {
	CountNewItems *uint32 // 1
}

func (m *CMsgClientItemAnnouncements) GetCountNewItems() uint32 {
	if m != nil && m.CountNewItems != nil {
		return *m.CountNewItems
	}
	return 0
}

func (m *CMsgClientItemAnnouncements) appendTo(b []byte) []byte {
	if m.CountNewItems != nil {
		b = appendVarint(b, 1, uint64(*m.CountNewItems))
	}
	return b
}

func (m *CMsgClientItemAnnouncements) decodeFrom(b []byte) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return protowire.ParseError(tagLen)
		}
		b = b[tagLen:]

		var n int
		switch {
		case num == 1 && typ == protowire.VarintType:
			m.CountNewItems, n = consumeVarintU32(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
	}
	return nil
}
