package steamclient

import (
	"github.com/k64z/steamcore/protocol"
)

// userNotificationType values from the Steam CM protocol.
const (
	userNotificationTypeTradeOffer uint32 = 1
)

// TradeNotification is fired when the number of pending trade offers changes.
type TradeNotification struct {
	TradeOffersCount uint32 // number of pending trade offers (0 = none pending)
}

// ItemNotification is fired when new inventory items arrive.
type ItemNotification struct {
	NewItemCount uint32 // number of new items (0 = none)
}

// handleUserNotifications processes an EMsgClientUserNotifications packet.
func (c *Client) handleUserNotifications(pkt *Packet) {
	var msg protocol.CMsgClientUserNotifications
	if err := protocol.Unmarshal(pkt.Body, &msg); err != nil {
		c.logger.Error("unmarshal UserNotifications", "err", err)
		return
	}

	if c.OnTradeNotification == nil {
		return
	}

	for _, n := range msg.GetNotifications() {
		if n.GetUserNotificationType() == userNotificationTypeTradeOffer {
			evt := &TradeNotification{TradeOffersCount: n.GetCount()}
			c.runHandler("OnTradeNotification", func() { c.OnTradeNotification(evt) })
		}
	}
}

// handleItemAnnouncements processes an EMsgClientItemAnnouncements packet.
func (c *Client) handleItemAnnouncements(pkt *Packet) {
	var msg protocol.CMsgClientItemAnnouncements
	if err := protocol.Unmarshal(pkt.Body, &msg); err != nil {
		c.logger.Error("unmarshal ItemAnnouncements", "err", err)
		return
	}

	if c.OnItemNotification == nil {
		return
	}

	evt := &ItemNotification{NewItemCount: msg.GetCountNewItems()}
	c.runHandler("OnItemNotification", func() { c.OnItemNotification(evt) })
}
