package pgn

// CatalogVersion identifies the compiled-in schema table. Bump when field layouts change.
const CatalogVersion = "2025.08"

var (
	enumHeadingReference = map[uint32]string{
		0: "True",
		1: "Magnetic",
	}
	enumWindReference = map[uint32]string{
		0: "True (ground referenced to North)",
		1: "Magnetic (referenced to magnetic North)",
		2: "Apparent",
		3: "True (boat referenced)",
		4: "True (water referenced)",
	}
	enumGNSSType = map[uint32]string{
		0: "GPS",
		1: "GLONASS",
		2: "GPS+GLONASS",
		3: "GPS+SBAS/WAAS",
		4: "GPS+SBAS/WAAS+GLONASS",
		5: "Chayka",
		6: "integrated",
		7: "surveyed",
		8: "Galileo",
	}
	enumGNSSMethod = map[uint32]string{
		0: "no GNSS",
		1: "GNSS fix",
		2: "DGNSS fix",
		3: "Precise GNSS",
		4: "RTK Fixed Integer",
		5: "RTK float",
		6: "Estimated (DR) mode",
		7: "Manual Input",
		8: "Simulate mode",
	}
	enumGNSSIntegrity = map[uint32]string{
		0: "No integrity checking",
		1: "Safe",
		2: "Caution",
	}
	enumTimeSource = map[uint32]string{
		0: "GPS",
		1: "GLONASS",
		2: "Radio Station",
		3: "Local Cesium clock",
		4: "Local Rubidium clock",
		5: "Local Crystal clock",
	}
	enumControllerState = map[uint32]string{
		0: "Error Active",
		1: "Error Passive",
		2: "Bus Off",
	}
	enumEquipmentStatus = map[uint32]string{
		0: "Operational",
		1: "Fault",
	}
	enumRudderDirectionOrder = map[uint32]string{
		0: "No Order",
		1: "Move to starboard",
		2: "Move to port",
	}
	enumFluidType = map[uint32]string{
		0: "Fuel",
		1: "Water",
		2: "Gray water",
		3: "Live well",
		4: "Oil",
		5: "Black water",
	}
	enumSpeedSensorType = map[uint32]string{
		0: "Paddle wheel",
		1: "Pitot tube",
		2: "Doppler",
		3: "Correlation (ultra sound)",
		4: "Electro Magnetic",
	}
	enumTemperatureSource = map[uint32]string{
		0: "Sea Temperature",
		1: "Outside Temperature",
		2: "Inside Temperature",
		3: "Engine Room Temperature",
		4: "Main Cabin Temperature",
	}
	enumResidualMode = map[uint32]string{
		0: "Autonomous",
		1: "Differential enhanced",
		2: "Estimated",
		3: "Simulator",
		4: "Manual",
	}
	enumSatelliteStatus = map[uint32]string{
		0: "Not tracked",
		1: "Tracked",
		2: "Used",
		3: "Not tracked+Diff",
		4: "Tracked+Diff",
		5: "Used+Diff",
	}
	enumRangeResidualMode = map[uint32]string{
		0: "Range residuals were used to calculate data",
		1: "Range residuals were calculated after the position",
	}
)

// catalog is the static schema table. Field layouts follow the NMEA2000 standard PGN set,
// bit offsets are explicit so the table doubles as wire format documentation.
var catalog = []Schema{
	{
		PGN: 126992, Description: "System Time", Type: PacketTypeSingle, Length: 8,
		Fields: []Field{
			{ID: "sid", Name: "SID", BitOffset: 0, BitLength: 8, FieldType: FieldTypeNumber},
			{ID: "source", Name: "Source", BitOffset: 8, BitLength: 4, FieldType: FieldTypeLookup, Enumeration: enumTimeSource},
			{ID: "reserved", Name: "Reserved", BitOffset: 12, BitLength: 4, FieldType: FieldTypeReserved},
			{ID: "date", Name: "Date", BitOffset: 16, BitLength: 16, FieldType: FieldTypeDate, Unit: "days"},
			{ID: "time", Name: "Time", BitOffset: 32, BitLength: 32, FieldType: FieldTypeTime, Resolution: 0.0001, Unit: "s"},
		},
	},
	{
		PGN: 126993, Description: "Heartbeat", Type: PacketTypeSingle, Length: 8,
		Fields: []Field{
			{ID: "dataTransmitOffset", Name: "Data Transmit Offset", BitOffset: 0, BitLength: 16, FieldType: FieldTypeTime, Resolution: 0.001, Unit: "s"},
			{ID: "sequenceCounter", Name: "Sequence Counter", BitOffset: 16, BitLength: 8, FieldType: FieldTypeNumber},
			{ID: "controller1State", Name: "Controller 1 State", BitOffset: 24, BitLength: 2, FieldType: FieldTypeLookup, Enumeration: enumControllerState},
			{ID: "controller2State", Name: "Controller 2 State", BitOffset: 26, BitLength: 2, FieldType: FieldTypeLookup, Enumeration: enumControllerState},
			{ID: "equipmentStatus", Name: "Equipment Status", BitOffset: 28, BitLength: 2, FieldType: FieldTypeLookup, Enumeration: enumEquipmentStatus},
			{ID: "reserved", Name: "Reserved", BitOffset: 30, BitLength: 34, FieldType: FieldTypeReserved},
		},
	},
	{
		PGN: 127245, Description: "Rudder", Type: PacketTypeSingle, Length: 8,
		Fields: []Field{
			{ID: "instance", Name: "Instance", BitOffset: 0, BitLength: 8, FieldType: FieldTypeNumber},
			{ID: "directionOrder", Name: "Direction Order", BitOffset: 8, BitLength: 3, FieldType: FieldTypeLookup, Enumeration: enumRudderDirectionOrder},
			{ID: "reserved", Name: "Reserved", BitOffset: 11, BitLength: 5, FieldType: FieldTypeReserved},
			{ID: "angleOrder", Name: "Angle Order", BitOffset: 16, BitLength: 16, Signed: true, Resolution: 0.0001, Unit: "rad", FieldType: FieldTypeNumber},
			{ID: "position", Name: "Position", BitOffset: 32, BitLength: 16, Signed: true, Resolution: 0.0001, Unit: "rad", FieldType: FieldTypeNumber},
			{ID: "reserved2", Name: "Reserved", BitOffset: 48, BitLength: 16, FieldType: FieldTypeReserved},
		},
	},
	{
		PGN: 127250, Description: "Vessel Heading", Type: PacketTypeSingle, Length: 8,
		Fields: []Field{
			{ID: "sid", Name: "SID", BitOffset: 0, BitLength: 8, FieldType: FieldTypeNumber},
			{ID: "heading", Name: "Heading", BitOffset: 8, BitLength: 16, Resolution: 0.0001, Unit: "rad", FieldType: FieldTypeNumber},
			{ID: "deviation", Name: "Deviation", BitOffset: 24, BitLength: 16, Signed: true, Resolution: 0.0001, Unit: "rad", FieldType: FieldTypeNumber},
			{ID: "variation", Name: "Variation", BitOffset: 40, BitLength: 16, Signed: true, Resolution: 0.0001, Unit: "rad", FieldType: FieldTypeNumber},
			{ID: "reference", Name: "Reference", BitOffset: 56, BitLength: 2, FieldType: FieldTypeLookup, Enumeration: enumHeadingReference},
			{ID: "reserved", Name: "Reserved", BitOffset: 58, BitLength: 6, FieldType: FieldTypeReserved},
		},
	},
	{
		PGN: 127251, Description: "Rate of Turn", Type: PacketTypeSingle, Length: 8,
		Fields: []Field{
			{ID: "sid", Name: "SID", BitOffset: 0, BitLength: 8, FieldType: FieldTypeNumber},
			{ID: "rate", Name: "Rate", BitOffset: 8, BitLength: 32, Signed: true, Resolution: 3.125e-08, Unit: "rad/s", FieldType: FieldTypeNumber},
			{ID: "reserved", Name: "Reserved", BitOffset: 40, BitLength: 24, FieldType: FieldTypeReserved},
		},
	},
	{
		PGN: 127257, Description: "Attitude", Type: PacketTypeSingle, Length: 8,
		Fields: []Field{
			{ID: "sid", Name: "SID", BitOffset: 0, BitLength: 8, FieldType: FieldTypeNumber},
			{ID: "yaw", Name: "Yaw", BitOffset: 8, BitLength: 16, Signed: true, Resolution: 0.0001, Unit: "rad", FieldType: FieldTypeNumber},
			{ID: "pitch", Name: "Pitch", BitOffset: 24, BitLength: 16, Signed: true, Resolution: 0.0001, Unit: "rad", FieldType: FieldTypeNumber},
			{ID: "roll", Name: "Roll", BitOffset: 40, BitLength: 16, Signed: true, Resolution: 0.0001, Unit: "rad", FieldType: FieldTypeNumber},
			{ID: "reserved", Name: "Reserved", BitOffset: 56, BitLength: 8, FieldType: FieldTypeReserved},
		},
	},
	{
		PGN: 127488, Description: "Engine Parameters, Rapid Update", Type: PacketTypeSingle, Length: 8,
		Fields: []Field{
			{ID: "instance", Name: "Instance", BitOffset: 0, BitLength: 8, FieldType: FieldTypeNumber},
			{ID: "speed", Name: "Speed", BitOffset: 8, BitLength: 16, Resolution: 0.25, Unit: "rpm", FieldType: FieldTypeNumber},
			{ID: "boostPressure", Name: "Boost Pressure", BitOffset: 24, BitLength: 16, Resolution: 100, Unit: "Pa", FieldType: FieldTypeNumber},
			{ID: "tiltTrim", Name: "Tilt/Trim", BitOffset: 40, BitLength: 8, Signed: true, Unit: "%", FieldType: FieldTypeNumber},
			{ID: "reserved", Name: "Reserved", BitOffset: 48, BitLength: 16, FieldType: FieldTypeReserved},
		},
	},
	{
		PGN: 127505, Description: "Fluid Level", Type: PacketTypeSingle, Length: 8,
		Fields: []Field{
			{ID: "instance", Name: "Instance", BitOffset: 0, BitLength: 4, FieldType: FieldTypeNumber},
			{ID: "type", Name: "Type", BitOffset: 4, BitLength: 4, FieldType: FieldTypeLookup, Enumeration: enumFluidType},
			{ID: "level", Name: "Level", BitOffset: 8, BitLength: 16, Signed: true, Resolution: 0.004, Unit: "%", FieldType: FieldTypeNumber},
			{ID: "capacity", Name: "Capacity", BitOffset: 24, BitLength: 32, Resolution: 0.1, Unit: "L", FieldType: FieldTypeNumber},
			{ID: "reserved", Name: "Reserved", BitOffset: 56, BitLength: 8, FieldType: FieldTypeReserved},
		},
	},
	{
		PGN: 127508, Description: "Battery Status", Type: PacketTypeSingle, Length: 8,
		Fields: []Field{
			{ID: "instance", Name: "Instance", BitOffset: 0, BitLength: 8, FieldType: FieldTypeNumber},
			{ID: "voltage", Name: "Voltage", BitOffset: 8, BitLength: 16, Signed: true, Resolution: 0.01, Unit: "V", FieldType: FieldTypeNumber},
			{ID: "current", Name: "Current", BitOffset: 24, BitLength: 16, Signed: true, Resolution: 0.1, Unit: "A", FieldType: FieldTypeNumber},
			{ID: "temperature", Name: "Temperature", BitOffset: 40, BitLength: 16, Resolution: 0.01, Unit: "K", FieldType: FieldTypeNumber},
			{ID: "sid", Name: "SID", BitOffset: 56, BitLength: 8, FieldType: FieldTypeNumber},
		},
	},
	{
		PGN: 128259, Description: "Speed", Type: PacketTypeSingle, Length: 8,
		Fields: []Field{
			{ID: "sid", Name: "SID", BitOffset: 0, BitLength: 8, FieldType: FieldTypeNumber},
			{ID: "speedWaterReferenced", Name: "Speed Water Referenced", BitOffset: 8, BitLength: 16, Resolution: 0.01, Unit: "m/s", FieldType: FieldTypeNumber},
			{ID: "speedGroundReferenced", Name: "Speed Ground Referenced", BitOffset: 24, BitLength: 16, Resolution: 0.01, Unit: "m/s", FieldType: FieldTypeNumber},
			{ID: "speedWaterReferencedType", Name: "Speed Water Referenced Type", BitOffset: 40, BitLength: 8, FieldType: FieldTypeLookup, Enumeration: enumSpeedSensorType},
			{ID: "reserved", Name: "Reserved", BitOffset: 48, BitLength: 16, FieldType: FieldTypeReserved},
		},
	},
	{
		PGN: 128267, Description: "Water Depth", Type: PacketTypeSingle, Length: 8,
		Fields: []Field{
			{ID: "sid", Name: "SID", BitOffset: 0, BitLength: 8, FieldType: FieldTypeNumber},
			{ID: "depth", Name: "Depth", BitOffset: 8, BitLength: 32, Resolution: 0.01, Unit: "m", FieldType: FieldTypeNumber},
			{ID: "offset", Name: "Offset", BitOffset: 40, BitLength: 16, Signed: true, Resolution: 0.001, Unit: "m", FieldType: FieldTypeNumber},
			{ID: "range", Name: "Range", BitOffset: 56, BitLength: 8, Resolution: 10, Unit: "m", FieldType: FieldTypeNumber},
		},
	},
	{
		PGN: 129025, Description: "Position, Rapid Update", Type: PacketTypeSingle, Length: 8,
		Fields: []Field{
			{ID: "latitude", Name: "Latitude", BitOffset: 0, BitLength: 32, Signed: true, Resolution: 1e-7, Unit: "deg", FieldType: FieldTypeNumber},
			{ID: "longitude", Name: "Longitude", BitOffset: 32, BitLength: 32, Signed: true, Resolution: 1e-7, Unit: "deg", FieldType: FieldTypeNumber},
		},
	},
	{
		PGN: 129026, Description: "COG & SOG, Rapid Update", Type: PacketTypeSingle, Length: 8,
		Fields: []Field{
			{ID: "sid", Name: "SID", BitOffset: 0, BitLength: 8, FieldType: FieldTypeNumber},
			{ID: "cogReference", Name: "COG Reference", BitOffset: 8, BitLength: 2, FieldType: FieldTypeLookup, Enumeration: enumHeadingReference},
			{ID: "reserved", Name: "Reserved", BitOffset: 10, BitLength: 6, FieldType: FieldTypeReserved},
			{ID: "cog", Name: "COG", BitOffset: 16, BitLength: 16, Resolution: 0.0001, Unit: "rad", FieldType: FieldTypeNumber},
			{ID: "sog", Name: "SOG", BitOffset: 32, BitLength: 16, Resolution: 0.01, Unit: "m/s", FieldType: FieldTypeNumber},
			{ID: "reserved2", Name: "Reserved", BitOffset: 48, BitLength: 16, FieldType: FieldTypeReserved},
		},
	},
	{
		PGN: 130306, Description: "Wind Data", Type: PacketTypeSingle, Length: 8,
		Fields: []Field{
			{ID: "sid", Name: "SID", BitOffset: 0, BitLength: 8, FieldType: FieldTypeNumber},
			{ID: "windSpeed", Name: "Wind Speed", BitOffset: 8, BitLength: 16, Resolution: 0.01, Unit: "m/s", FieldType: FieldTypeNumber},
			{ID: "windAngle", Name: "Wind Angle", BitOffset: 24, BitLength: 16, Resolution: 0.0001, Unit: "rad", FieldType: FieldTypeNumber},
			{ID: "reference", Name: "Reference", BitOffset: 40, BitLength: 3, FieldType: FieldTypeLookup, Enumeration: enumWindReference},
			{ID: "reserved", Name: "Reserved", BitOffset: 43, BitLength: 21, FieldType: FieldTypeReserved},
		},
	},
	{
		PGN: 130310, Description: "Environmental Parameters", Type: PacketTypeSingle, Length: 8,
		Fields: []Field{
			{ID: "sid", Name: "SID", BitOffset: 0, BitLength: 8, FieldType: FieldTypeNumber},
			{ID: "waterTemperature", Name: "Water Temperature", BitOffset: 8, BitLength: 16, Resolution: 0.01, Unit: "K", FieldType: FieldTypeNumber},
			{ID: "outsideAmbientAirTemperature", Name: "Outside Ambient Air Temperature", BitOffset: 24, BitLength: 16, Resolution: 0.01, Unit: "K", FieldType: FieldTypeNumber},
			{ID: "atmosphericPressure", Name: "Atmospheric Pressure", BitOffset: 40, BitLength: 16, Resolution: 100, Unit: "Pa", FieldType: FieldTypeNumber},
			{ID: "reserved", Name: "Reserved", BitOffset: 56, BitLength: 8, FieldType: FieldTypeReserved},
		},
	},
	{
		PGN: 130312, Description: "Temperature", Type: PacketTypeSingle, Length: 8,
		Fields: []Field{
			{ID: "sid", Name: "SID", BitOffset: 0, BitLength: 8, FieldType: FieldTypeNumber},
			{ID: "instance", Name: "Instance", BitOffset: 8, BitLength: 8, FieldType: FieldTypeNumber},
			{ID: "source", Name: "Source", BitOffset: 16, BitLength: 8, FieldType: FieldTypeLookup, Enumeration: enumTemperatureSource},
			{ID: "actualTemperature", Name: "Actual Temperature", BitOffset: 24, BitLength: 16, Resolution: 0.01, Unit: "K", FieldType: FieldTypeNumber},
			{ID: "setTemperature", Name: "Set Temperature", BitOffset: 40, BitLength: 16, Resolution: 0.01, Unit: "K", FieldType: FieldTypeNumber},
			{ID: "reserved", Name: "Reserved", BitOffset: 56, BitLength: 8, FieldType: FieldTypeReserved},
		},
	},
	{
		PGN: 126996, Description: "Product Information", Type: PacketTypeFast, Length: 134,
		Fields: []Field{
			{ID: "nmea2000Version", Name: "NMEA 2000 Version", BitOffset: 0, BitLength: 16, FieldType: FieldTypeNumber},
			{ID: "productCode", Name: "Product Code", BitOffset: 16, BitLength: 16, FieldType: FieldTypeNumber},
			{ID: "modelId", Name: "Model ID", BitOffset: 32, BitLength: 256, FieldType: FieldTypeStringFix},
			{ID: "softwareVersionCode", Name: "Software Version Code", BitOffset: 288, BitLength: 256, FieldType: FieldTypeStringFix},
			{ID: "modelVersion", Name: "Model Version", BitOffset: 544, BitLength: 256, FieldType: FieldTypeStringFix},
			{ID: "modelSerialCode", Name: "Model Serial Code", BitOffset: 800, BitLength: 256, FieldType: FieldTypeStringFix},
			{ID: "certificationLevel", Name: "Certification Level", BitOffset: 1056, BitLength: 8, FieldType: FieldTypeNumber},
			{ID: "loadEquivalency", Name: "Load Equivalency", BitOffset: 1064, BitLength: 8, FieldType: FieldTypeNumber},
		},
	},
	{
		PGN: 129029, Description: "GNSS Position Data", Type: PacketTypeFast, Length: 43,
		Fields: []Field{
			{ID: "sid", Name: "SID", BitOffset: 0, BitLength: 8, FieldType: FieldTypeNumber},
			{ID: "date", Name: "Date", BitOffset: 8, BitLength: 16, FieldType: FieldTypeDate, Unit: "days"},
			{ID: "time", Name: "Time", BitOffset: 24, BitLength: 32, FieldType: FieldTypeTime, Resolution: 0.0001, Unit: "s"},
			{ID: "latitude", Name: "Latitude", BitOffset: 56, BitLength: 64, Signed: true, Resolution: 1e-16, Unit: "deg", FieldType: FieldTypeNumber},
			{ID: "longitude", Name: "Longitude", BitOffset: 120, BitLength: 64, Signed: true, Resolution: 1e-16, Unit: "deg", FieldType: FieldTypeNumber},
			{ID: "altitude", Name: "Altitude", BitOffset: 184, BitLength: 64, Signed: true, Resolution: 1e-6, Unit: "m", FieldType: FieldTypeNumber},
			{ID: "gnssType", Name: "GNSS type", BitOffset: 248, BitLength: 4, FieldType: FieldTypeLookup, Enumeration: enumGNSSType},
			{ID: "method", Name: "Method", BitOffset: 252, BitLength: 4, FieldType: FieldTypeLookup, Enumeration: enumGNSSMethod},
			{ID: "integrity", Name: "Integrity", BitOffset: 256, BitLength: 2, FieldType: FieldTypeLookup, Enumeration: enumGNSSIntegrity},
			{ID: "reserved", Name: "Reserved", BitOffset: 258, BitLength: 6, FieldType: FieldTypeReserved},
			{ID: "numberOfSvs", Name: "Number of SVs", BitOffset: 264, BitLength: 8, FieldType: FieldTypeNumber},
			{ID: "hdop", Name: "HDOP", BitOffset: 272, BitLength: 16, Signed: true, Resolution: 0.01, FieldType: FieldTypeNumber},
			{ID: "pdop", Name: "PDOP", BitOffset: 288, BitLength: 16, Signed: true, Resolution: 0.01, FieldType: FieldTypeNumber},
			{ID: "geoidalSeparation", Name: "Geoidal Separation", BitOffset: 304, BitLength: 32, Signed: true, Resolution: 0.01, Unit: "m", FieldType: FieldTypeNumber},
			{ID: "referenceStations", Name: "Reference Stations", BitOffset: 336, BitLength: 8, FieldType: FieldTypeNumber},
			{ID: "referenceStationType", Name: "Reference Station Type", BitOffset: 344, BitLength: 4, FieldType: FieldTypeLookup, Enumeration: enumGNSSType},
			{ID: "referenceStationId", Name: "Reference Station ID", BitOffset: 348, BitLength: 12, FieldType: FieldTypeNumber},
			{ID: "ageOfDgnssCorrections", Name: "Age of DGNSS Corrections", BitOffset: 360, BitLength: 16, Resolution: 0.01, Unit: "s", FieldType: FieldTypeNumber},
		},
		RepeatingFieldSetStartField: 16,
		RepeatingFieldSetSize:       3,
		RepeatingFieldSetCountField: 15,
	},
	{
		PGN: 129540, Description: "GNSS Sats in View", Type: PacketTypeFast, Length: 3,
		Fields: []Field{
			{ID: "sid", Name: "SID", BitOffset: 0, BitLength: 8, FieldType: FieldTypeNumber},
			{ID: "rangeResidualMode", Name: "Range Residual Mode", BitOffset: 8, BitLength: 2, FieldType: FieldTypeLookup, Enumeration: enumRangeResidualMode},
			{ID: "reserved", Name: "Reserved", BitOffset: 10, BitLength: 6, FieldType: FieldTypeReserved},
			{ID: "satsInView", Name: "Sats in View", BitOffset: 16, BitLength: 8, FieldType: FieldTypeNumber},
			{ID: "prn", Name: "PRN", BitOffset: 24, BitLength: 8, FieldType: FieldTypeNumber},
			{ID: "elevation", Name: "Elevation", BitOffset: 32, BitLength: 16, Signed: true, Resolution: 0.0001, Unit: "rad", FieldType: FieldTypeNumber},
			{ID: "azimuth", Name: "Azimuth", BitOffset: 48, BitLength: 16, Resolution: 0.0001, Unit: "rad", FieldType: FieldTypeNumber},
			{ID: "snr", Name: "SNR", BitOffset: 64, BitLength: 16, Resolution: 0.01, Unit: "dB", FieldType: FieldTypeNumber},
			{ID: "rangeResiduals", Name: "Range Residuals", BitOffset: 80, BitLength: 32, Signed: true, Resolution: 1e-5, Unit: "m", FieldType: FieldTypeNumber},
			{ID: "status", Name: "Status", BitOffset: 112, BitLength: 4, FieldType: FieldTypeLookup, Enumeration: enumSatelliteStatus},
			{ID: "reserved2", Name: "Reserved", BitOffset: 116, BitLength: 4, FieldType: FieldTypeReserved},
		},
		RepeatingFieldSetStartField: 5,
		RepeatingFieldSetSize:       7,
		RepeatingFieldSetCountField: 4,
	},
	{
		PGN: 130323, Description: "Meteorological Station Data", Type: PacketTypeFast, Length: 24,
		Fields: []Field{
			{ID: "mode", Name: "Mode", BitOffset: 0, BitLength: 4, FieldType: FieldTypeLookup, Enumeration: enumResidualMode},
			{ID: "reserved", Name: "Reserved", BitOffset: 4, BitLength: 4, FieldType: FieldTypeReserved},
			{ID: "measurementDate", Name: "Measurement Date", BitOffset: 8, BitLength: 16, FieldType: FieldTypeDate, Unit: "days"},
			{ID: "measurementTime", Name: "Measurement Time", BitOffset: 24, BitLength: 32, FieldType: FieldTypeTime, Resolution: 0.0001, Unit: "s"},
			{ID: "stationLatitude", Name: "Station Latitude", BitOffset: 56, BitLength: 32, Signed: true, Resolution: 1e-7, Unit: "deg", FieldType: FieldTypeNumber},
			{ID: "stationLongitude", Name: "Station Longitude", BitOffset: 88, BitLength: 32, Signed: true, Resolution: 1e-7, Unit: "deg", FieldType: FieldTypeNumber},
			{ID: "windSpeed", Name: "Wind Speed", BitOffset: 120, BitLength: 16, Resolution: 0.01, Unit: "m/s", FieldType: FieldTypeNumber},
			{ID: "windDirection", Name: "Wind Direction", BitOffset: 136, BitLength: 16, Resolution: 0.0001, Unit: "rad", FieldType: FieldTypeNumber},
			{ID: "windReference", Name: "Wind Reference", BitOffset: 152, BitLength: 3, FieldType: FieldTypeLookup, Enumeration: enumWindReference},
			{ID: "reserved2", Name: "Reserved", BitOffset: 155, BitLength: 5, FieldType: FieldTypeReserved},
			{ID: "atmosphericPressure", Name: "Atmospheric Pressure", BitOffset: 160, BitLength: 16, Resolution: 100, Unit: "Pa", FieldType: FieldTypeNumber},
			{ID: "ambientTemperature", Name: "Ambient Temperature", BitOffset: 176, BitLength: 16, Resolution: 0.01, Unit: "K", FieldType: FieldTypeNumber},
		},
	},
}
