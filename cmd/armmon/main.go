package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/robotalks/perilink/pkg/cli/sh"
	"github.com/robotalks/perilink/pkg/l1/comm/mqtt"
	env "github.com/robotalks/perilink/pkg/l1/env/controller"
	"github.com/robotalks/perilink/pkg/l1/msgs"

	_ "github.com/robotalks/perilink/pkg/arm/msgs"
)

var (
	mqttURL    = env.DefaultMQTTBrokerURL
	outputJSON bool
)

func init() {
	if val := os.Getenv("ROBO_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print messages in JSON.")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	q, err := mqtt.NewQueueFromURL(mqttURL)
	if err != nil {
		log.Fatalln(err)
	}

	q.Sub("#", mqtt.Handler(func(topic string, payload []byte) {
		if strings.HasSuffix(topic, "/meta") {
			log.Printf("%s: %s", topic, string(payload))
			return
		}
		typed, err := msgs.DecodeTyped(payload)
		if err != nil {
			log.Printf("%s: bad message: %v", topic, err)
			return
		}
		msg, err := typed.Decode()
		if err != nil {
			log.Printf("%s: decode error: (type_id=%x) %v", topic, typed.TypeID, err)
			return
		}
		out, err := sh.FormatResult(msg, outputJSON)
		if err != nil {
			log.Printf("%s: %v", topic, err)
			return
		}
		log.Printf("%s: #%d %s", topic, typed.Sequence, out)
	}))
	if token := q.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalln(token.Error())
	}
	<-(chan struct{})(nil)
}
