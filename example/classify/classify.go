/*
Example code showing how to run a darknet classifier network on an image and
print the top scoring classes.
*/
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/swdee/go-darknet"
	"github.com/swdee/go-darknet/postprocess"
	"github.com/urfave/cli/v2"
)

func main() {
	// disable logging timestamps
	log.SetFlags(0)

	app := &cli.App{
		Name:  "classify",
		Usage: "classify an image with a darknet network",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "cfg",
				Value: "cfg/darknet19.cfg",
				Usage: "darknet network config `FILE`",
			},
			&cli.StringFlag{
				Name:  "weights",
				Value: "darknet19.weights",
				Usage: "darknet weights `FILE`",
			},
			&cli.StringFlag{
				Name:  "data",
				Value: "cfg/imagenet1k.data",
				Usage: "darknet data `FILE` naming the classes",
			},
			&cli.StringFlag{
				Name:  "image",
				Value: "data/dog.jpg",
				Usage: "image `FILE` to classify",
			},
			&cli.IntFlag{
				Name:  "top",
				Value: 5,
				Usage: "number of classes to print",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {

	net, err := darknet.LoadNetwork(c.String("cfg"), c.String("weights"), false)

	if err != nil {
		return err
	}

	defer net.Close()

	meta, err := darknet.LoadMetadata(c.String("data"))

	if err != nil {
		return err
	}

	det := darknet.NewDetector(net, meta, darknet.DefaultParams())

	res, err := det.Classify(c.String("image"))

	if err != nil {
		return err
	}

	for _, r := range postprocess.Top(res, c.Int("top")) {
		fmt.Printf("%3d %-24s %.4f\n", r.Class, r.Label, r.Score)
	}

	return nil
}
