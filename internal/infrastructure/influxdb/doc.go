// Package influxdb records property readings in InfluxDB v2.
//
// Every state report and control confirmation the bridge emits carries
// property readings (brightness, power state, setpoints, temperatures).
// They are written here as time-series points so the controller's history
// can be graphed. Nothing in the bridge reads them back.
//
// # Usage
//
//	client, err := influxdb.Connect(cfg.InfluxDB)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	client.WriteReading(reading)
//
// # Thread Safety
//
// All methods are safe for concurrent use. Writes are non-blocking and
// batched according to batch_size and flush_interval; failures are
// delivered to the SetOnError callback.
package influxdb
