package config

import (
	"clubscore/utils"
	"fmt"
	"net"
	"strconv"

	"github.com/segmentio/kafka-go"
)

// Standings diffs for a season are published to one topic per season so score
// displays can tail a full season from the beginning.
func topicForSeason(season int) string {
	return fmt.Sprintf("standings-%d", season)
}

func CreateStandingsTopic(season int) error {
	broker := Env().KafkaBroker
	if broker == "" {
		return fmt.Errorf("KAFKA_BROKER environment variable not set")
	}

	conn, err := kafka.Dial("tcp", broker)
	if err != nil {
		return err
	}
	defer utils.Closer(conn)()

	controller, err := conn.Controller()
	if err != nil {
		return err
	}
	controllerConn, err := kafka.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return err
	}
	defer utils.Closer(controllerConn)()

	topicConfig := kafka.TopicConfig{
		Topic:             topicForSeason(season),
		NumPartitions:     1,
		ReplicationFactor: 1,
		ConfigEntries: []kafka.ConfigEntry{
			{
				ConfigName:  "compression.type",
				ConfigValue: "zstd",
			},
			// a season of diffs is small, keep the full history
			{
				ConfigName:  "retention.ms",
				ConfigValue: "-1",
			},
		},
	}

	return controllerConn.CreateTopics(topicConfig)
}

func GetStandingsWriter(season int) (*kafka.Writer, error) {
	broker := Env().KafkaBroker
	if broker == "" {
		return nil, fmt.Errorf("KAFKA_BROKER environment variable not set")
	}
	err := CreateStandingsTopic(season)
	if err != nil {
		return nil, err
	}
	return kafka.NewWriter(kafka.WriterConfig{
		Brokers:          []string{broker},
		Topic:            topicForSeason(season),
		CompressionCodec: kafka.Zstd.Codec(),
	}), nil
}
