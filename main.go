package jsonhttp

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/nojima/jsonhttp/exchange"
	"github.com/nojima/jsonhttp/flags"
	"github.com/nojima/jsonhttp/helper"
	"github.com/nojima/jsonhttp/input"
	"github.com/nojima/jsonhttp/logging"
	"github.com/nojima/jsonhttp/output"
	"github.com/nojima/jsonhttp/trace"
	"github.com/nojima/jsonhttp/version"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Options struct {
	// Method is used when the command line does not name one
	Method input.Method
}

func Main(options *Options) error {
	// Parse flags
	flagSet, optionSet, err := flags.Parse(os.Args)
	if err != nil {
		return err
	}
	inputOptions := optionSet.InputOptions
	inputOptions.Method = options.Method
	outputOptions := optionSet.OutputOptions

	// Check --version
	if optionSet.ShowVersion {
		fmt.Fprintf(os.Stderr, "jsonhttp %s\n", version.Current())
		return nil
	}

	// Check --licenses
	if optionSet.ShowLicenses {
		version.PrintLicenses(os.Stdout)
		return nil
	}

	// Parse positional arguments
	req, err := input.ParseArgs(flagSet.Args(), os.Stdin, &inputOptions)
	if _, ok := errors.Cause(err).(*input.UsageError); ok {
		flagSet.PrintUsage(os.Stderr)
		return err
	}
	if err != nil {
		return err
	}
	req.Entity.ContentType = optionSet.Entity.ContentType
	req.Entity.Charset = optionSet.Entity.Charset
	req.Auth = optionSet.Auth

	logger := logging.New(optionSet.LogLevel, os.Stderr)
	defer logger.Sync()
	exchangeOptions := optionSet.ExchangeOptions
	exchangeOptions.Logger = logger

	writer := bufio.NewWriter(os.Stdout)
	defer writer.Flush()
	printer := output.NewPrinter(writer, &outputOptions)

	// Print request
	if outputOptions.PrintRequestHeader || outputOptions.PrintRequestBody {
		httpReq, err := exchange.BuildHTTPRequest(req)
		if err != nil {
			return err
		}
		if err := output.PrintRequest(printer, &output.Request{HTTPRequest: httpReq, Body: req.Entity.Text}, &outputOptions); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Send request and receive response
	start := time.Now()
	resp, err := helper.Do(ctx, req, &exchangeOptions)
	if err != nil {
		logger.Debug("request failed", zap.Error(err))
		writer.Flush()
		fmt.Fprint(os.Stderr, trace.Format(err))
		return err
	}

	// Print response
	if err := output.PrintResponse(printer, resp, &outputOptions); err != nil {
		return err
	}
	if outputOptions.Verbose {
		writer.Flush()
		output.PrintSummary(os.Stderr, resp, time.Since(start))
	}
	return nil
}
