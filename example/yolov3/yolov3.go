/*
Example code showing how to run YOLOv3 object detection over a directory of
images and write an annotated copy of each image to an output directory.

The model files default to cfg/yolov3.cfg, yolov3.weights and cfg/coco.data
and can be changed with the DARKNET_CFG, DARKNET_WEIGHTS and DARKNET_DATA
environment variables.
*/
package main

import (
	"log"
	"os"

	"github.com/swdee/go-darknet"
	"github.com/swdee/go-darknet/batch"
	"github.com/swdee/go-darknet/config"
	"github.com/swdee/go-darknet/render"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const (
	flagDataset      = "dataset"
	flagOutputFolder = "output_folder"
)

func main() {
	// disable logging timestamps
	log.SetFlags(0)

	cfg := config.Default()

	app := &cli.App{
		Name:  "yolov3",
		Usage: "run YOLOv3 object detection over a directory of images",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  flagDataset,
				Value: cfg.Dataset,
				Usage: "directory of images to run detection on",
			},
			&cli.StringFlag{
				Name:  flagOutputFolder,
				Value: cfg.OutputFolder,
				Usage: "directory to write annotated images to",
			},
		},
		Action: func(c *cli.Context) error {
			cfg.Dataset = c.String(flagDataset)
			cfg.OutputFolder = c.String(flagOutputFolder)
			return run(cfg)
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(cfg config.Config) error {

	logger, err := newLogger()

	if err != nil {
		return err
	}

	defer logger.Sync()

	if err := cfg.LoadEnv(); err != nil {
		return err
	}

	if err := darknet.ValidateLayout(); err != nil {
		return err
	}

	net, err := darknet.LoadNetwork(cfg.NetworkCfg, cfg.Weights, false)

	if err != nil {
		return err
	}

	defer net.Close()

	meta, err := darknet.LoadMetadata(cfg.Data)

	if err != nil {
		return err
	}

	// optional querying of the network, not necessary for production code
	if err := net.Query(os.Stdout, meta); err != nil {
		return err
	}

	det := darknet.NewDetector(net, meta, darknet.Params{
		Thresh:     cfg.Thresh,
		HierThresh: cfg.HierThresh,
		NMS:        cfg.NMS,
		NMSMode:    cfg.NMSMode,
		ResetRNN:   cfg.ResetRNN,
	})

	opts := render.DefaultOptions()
	opts.Labels = cfg.Labels
	opts.LineThickness = cfg.LineThickness

	var ann batch.Annotator

	switch cfg.Renderer {
	case config.RendererImage:
		ann = render.NewImage(opts)
	default:
		ann = render.NewGoCV(opts)
	}

	logger.Info("starting batch",
		zap.String("dataset", cfg.Dataset),
		zap.String("output", cfg.OutputFolder),
		zap.String("renderer", cfg.Renderer),
		zap.Stringer("nms_mode", cfg.NMSMode),
	)

	_, err = batch.New(det, ann, logger).Run(cfg.Dataset, cfg.OutputFolder)

	return err
}

// newLogger returns a development logger without timestamps
func newLogger() (*zap.Logger, error) {

	zc := zap.NewDevelopmentConfig()
	zc.EncoderConfig.TimeKey = ""

	return zc.Build()
}
